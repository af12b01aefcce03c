package matcher

import (
	"unicode/utf8"
)

// resolve matches Composite rule c against the whole input: Body n+m times, then Tail m times,
// n >= 1, m >= 1. Both counters grow from 1. Every Body and Tail match consumes at least one
// character, so neither counter can usefully exceed input length.
func (m *Matcher) resolve(c Composite, input string) (string, bool, error) {
	limit := utf8.RuneCountInString(input)

nLoop:
	for n := 1; n <= limit; n++ {
	mLoop:
		for k := 1; n+k <= limit; k++ {
			T().Debugf("rule %d: trying n = %d, m = %d", c.Rule, n, k)
			rest := input
			for i := 1; i <= n+k; i++ {
				next, ok, e := m.first(c.Body, rest)
				if e != nil {
					return input, false, e
				}
				if !ok {
					if i <= n {
						// fewer than n bodies: larger n cannot do better either
						break nLoop
					}
					continue nLoop
				}
				rest = next
			}

			for j := 1; j <= k; j++ {
				next, ok, e := m.first(c.Tail, rest)
				if e != nil {
					return input, false, e
				}
				if !ok {
					if rest == "" {
						continue nLoop
					}
					continue mLoop
				}
				rest = next
			}

			if rest == "" {
				T().Debugf("rule %d: accepted with n = %d, m = %d", c.Rule, n, k)
				return rest, true, nil
			}
		}
	}

	return input, false, nil
}
