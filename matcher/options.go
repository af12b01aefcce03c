package matcher

import (
	"strings"
)

// Strategy selects how sub-rule remainders are propagated through sequences.
type Strategy int

const (
	// FirstMatch commits each rule to its first successful alternative.
	FirstMatch Strategy = iota
	// Backtrack keeps all feasible remainders of each rule.
	Backtrack
)

// DefaultMaxInputLen is the default length limit (in characters) of matched input.
const DefaultMaxInputLen = 1 << 16

var strategyNames = map[Strategy]string{
	FirstMatch: "first",
	Backtrack:  "backtrack",
}

func (s Strategy) String() string {
	name, has := strategyNames[s]
	if !has {
		return "unknown"
	}
	return name
}

// ParseStrategy converts strategy name ("first" or "backtrack", case insensitive) to Strategy.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return FirstMatch, wrongOptionError("unknown strategy %q", name)
}

// Option configures Matcher.
type Option func(*config)

type config struct {
	strategy         Strategy
	maxLen           int
	requireComposite bool
}

func defaultConfig() config {
	return config{
		strategy: FirstMatch,
		maxLen:   DefaultMaxInputLen,
	}
}

// WithStrategy sets matching strategy, FirstMatch is used by default.
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithMaxInputLen sets the longest input (in characters) the matcher agrees to examine.
// Longer inputs never match.
func WithMaxInputLen(n int) Option {
	return func(c *config) {
		c.maxLen = n
	}
}

// RequireComposite makes New fail unless the root rule is Composite.
func RequireComposite() Option {
	return func(c *config) {
		c.requireComposite = true
	}
}

func (c config) check() error {
	if _, has := strategyNames[c.strategy]; !has {
		return wrongOptionError("unknown strategy %d", int(c.strategy))
	}
	if c.maxLen <= 0 {
		return wrongOptionError("max input length must be positive, got %d", c.maxLen)
	}
	return nil
}
