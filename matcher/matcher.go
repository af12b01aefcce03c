package matcher

import (
	"unicode/utf8"

	"github.com/ava12/rulematch/grammar"
)

// Matcher matches rules of a grammar. It never modifies the grammar and is safe
// for concurrent use.
type Matcher struct {
	grammar   *grammar.Grammar
	strategy  Strategy
	maxLen    int
	composite *Composite
	memos     *memoPool
}

// New checks g and creates a matcher for it.
// Returns nil and *rulematch.Error if g contains recursion other than Repetition and Nested
// self-references, or if options are wrong.
func New(g *grammar.Grammar, opts ...Option) (*Matcher, error) {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if e := c.check(); e != nil {
		return nil, e
	}

	if e := checkRecursion(g); e != nil {
		return nil, e
	}

	m := &Matcher{
		grammar:  g,
		strategy: c.strategy,
		maxLen:   c.maxLen,
	}

	if comp, ok := DetectComposite(g, grammar.RootRule); ok {
		m.composite = &comp
		T().Debugf("root rule is %s", comp)
	} else if c.requireComposite {
		return nil, notCompositeError(grammar.RootRule)
	}

	if m.strategy == Backtrack {
		m.memos = newMemoPool()
	}
	return m, nil
}

func (m *Matcher) Grammar() *grammar.Grammar {
	return m.grammar
}

func (m *Matcher) Strategy() Strategy {
	return m.strategy
}

func (m *Matcher) MaxInputLen() int {
	return m.maxLen
}

// Composite returns description of composite root rule if there is one.
func (m *Matcher) Composite() (Composite, bool) {
	if m.composite == nil {
		return Composite{}, false
	}
	return *m.composite, true
}

func (m *Matcher) tooLong(input string) bool {
	if len(input) <= m.maxLen {
		return false
	}
	if utf8.RuneCountInString(input) <= m.maxLen {
		return false
	}

	T().Infof("input of %d bytes exceeds %d characters, rejected", len(input), m.maxLen)
	return true
}

// Match tries to match rule id against the front of input committing every rule to its
// first successful alternative. On success returns unconsumed suffix of input and true,
// on failure returns input unchanged and false.
// Error is returned only for unknown rule identifiers.
func (m *Matcher) Match(id grammar.RuleID, input string) (remainder string, ok bool, e error) {
	if m.tooLong(input) {
		return input, false, nil
	}
	return m.first(id, input)
}

// MatchRoot matches the root rule against the front of input using configured strategy.
// FirstMatch uses the composite resolver for Composite root, which only succeeds consuming
// the whole input. Backtrack returns the shortest feasible remainder.
func (m *Matcher) MatchRoot(input string) (remainder string, ok bool, e error) {
	if m.tooLong(input) {
		return input, false, nil
	}

	switch {
	case m.strategy == Backtrack:
		ends, e := m.ends(grammar.RootRule, input)
		if e != nil || ends.IsEmpty() {
			return input, false, e
		}
		return input[ends.Max():], true, nil

	case m.composite != nil:
		return m.resolve(*m.composite, input)

	default:
		return m.first(grammar.RootRule, input)
	}
}

// first is the single-remainder matcher.
func (m *Matcher) first(id grammar.RuleID, input string) (string, bool, error) {
	p, e := m.grammar.Lookup(id)
	if e != nil {
		return input, false, e
	}

	if p.IsTerminal() {
		return matchTerminal(p.Char, input)
	}
	return m.firstAlternative(p.Alternatives, input)
}

func matchTerminal(c rune, input string) (string, bool, error) {
	r, size := utf8.DecodeRuneInString(input)
	if size == 0 || r != c {
		return input, false, nil
	}
	return input[size:], true, nil
}

// firstAlternative tries alternatives in declared order, the first matching sequence wins.
func (m *Matcher) firstAlternative(alts []grammar.Alternative, input string) (string, bool, error) {
	for _, alt := range alts {
		rest, ok, e := m.firstSequence(alt, input)
		if e != nil || ok {
			return rest, ok, e
		}
	}
	return input, false, nil
}

// firstSequence matches rules of alt one after another, each against the remainder of the previous one.
func (m *Matcher) firstSequence(alt grammar.Alternative, input string) (string, bool, error) {
	rest := input
	for _, id := range alt {
		var ok bool
		var e error
		rest, ok, e = m.first(id, rest)
		if e != nil || !ok {
			return input, false, e
		}
	}
	return rest, true, nil
}
