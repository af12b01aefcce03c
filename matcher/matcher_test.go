package matcher

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/test"
	"github.com/ava12/rulematch/ruledef"
)

const (
	simpleRules = `
0: 1 2
1: "a"
2: "b"
`
	nestedRules = `
0: 4 1 5
1: 2 3 | 3 2
2: 4 4 | 5 5
3: 4 5 | 5 4
4: "a"
5: "b"
`
	compositeRules = `
0: 8 11
8: 42 | 42 8
11: 42 31 | 42 11 31
42: "a"
31: "b"
`
	// 1 may stop after one or two "a", only the second split lets 2 match
	ambiguousRules = `
0: 1 2
1: 3 | 3 3
2: 3 4
3: "a"
4: "b"
`
)

var strategies = []Strategy{FirstMatch, Backtrack}

func newTestMatcher(t *testing.T, rules string, opts ...Option) *Matcher {
	t.Helper()
	g, e := ruledef.ParseRules("rules", rules)
	require.NoError(t, e)
	m, e := New(g, opts...)
	require.NoError(t, e)
	return m
}

func rootAccepts(t *testing.T, m *Matcher, input string) bool {
	t.Helper()
	rest, ok, e := m.MatchRoot(input)
	require.NoError(t, e)
	return ok && rest == ""
}

func TestTerminal(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, simpleRules)
	samples := []struct {
		input, rest string
		ok          bool
	}{
		{"a", "", true},
		{"abc", "bc", true},
		{"ba", "ba", false},
		{"", "", false},
	}

	for _, sample := range samples {
		rest, ok, e := m.Match(1, sample.input)
		require.NoError(t, e)
		assert.Equal(t, sample.ok, ok, "input %q", sample.input)
		assert.Equal(t, sample.rest, rest, "input %q", sample.input)
		consumed := len(sample.input) - len(rest)
		if ok {
			assert.Equal(t, 1, consumed)
		} else {
			assert.Equal(t, 0, consumed)
		}
	}
}

func TestTerminalMultibyte(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, "0: 1 1\n1: \"\u00e9\"\n")
	rest, ok, e := m.Match(1, "\u00e9\u00e9x")
	require.NoError(t, e)
	assert.True(t, ok)
	assert.Equal(t, "\u00e9x", rest)
	assert.True(t, rootAccepts(t, m, "\u00e9\u00e9"))
}

func TestSequence(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	for _, s := range strategies {
		m := newTestMatcher(t, simpleRules, WithStrategy(s))
		assert.True(t, rootAccepts(t, m, "ab"), s.String())
		assert.False(t, rootAccepts(t, m, "ba"), s.String())
		assert.False(t, rootAccepts(t, m, "a"), s.String())
		assert.False(t, rootAccepts(t, m, "abb"), s.String())
	}

	m := newTestMatcher(t, simpleRules)
	rest, ok, e := m.Match(0, "abb")
	require.NoError(t, e)
	assert.True(t, ok)
	assert.Equal(t, "b", rest)

	rest, ok, e = m.Match(0, "a")
	require.NoError(t, e)
	assert.False(t, ok)
	assert.Equal(t, "a", rest)
}

func TestAlternativeOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, "0: 1 | 1 1\n1: \"a\"\n")
	rest, ok, e := m.Match(0, "aa")
	require.NoError(t, e)
	assert.True(t, ok)
	assert.Equal(t, "a", rest, "first alternative wins")

	rests, e := m.MatchAll(0, "aa")
	require.NoError(t, e)
	assert.Equal(t, []string{"a", ""}, rests)
}

func TestFailedAlternativeConsumesNothing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, "0: 1 2 | 1 3\n1: \"a\"\n2: \"b\"\n3: \"c\"\n")
	rest, ok, e := m.Match(0, "ac")
	require.NoError(t, e)
	assert.True(t, ok)
	assert.Equal(t, "", rest)

	rest, ok, e = m.Match(0, "ad")
	require.NoError(t, e)
	assert.False(t, ok)
	assert.Equal(t, "ad", rest)
}

func TestNestedAlternatives(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	samples := map[string]bool{
		"ababbb":  true,
		"abbbab":  true,
		"bababa":  false,
		"aaabbb":  false,
		"aaaabbb": false,
	}

	for _, s := range strategies {
		m := newTestMatcher(t, nestedRules, WithStrategy(s))
		for input, expected := range samples {
			assert.Equal(t, expected, rootAccepts(t, m, input), "%s: %q", s, input)
		}
	}
}

func TestComposite(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	samples := map[string]bool{
		"aab":   true,
		"aaabb": true,
		"aaab":  true,
		"ab":    false,
		"b":     false,
		"":      false,
		"aabb":  false,
		"aaba":  false,
		"aacb":  false,
		"abab":  false,
	}

	for _, s := range strategies {
		m := newTestMatcher(t, compositeRules, WithStrategy(s))
		for input, expected := range samples {
			assert.Equal(t, expected, rootAccepts(t, m, input), "%s: %q", s, input)
		}
	}
}

func TestCompositeLanguage(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)

	for _, s := range strategies {
		m := newTestMatcher(t, compositeRules, WithStrategy(s))
		for k := 0; k <= 8; k++ {
			for j := 0; j <= 8; j++ {
				input := strings.Repeat("a", k) + strings.Repeat("b", j)
				expected := k > j && j >= 1
				assert.Equal(t, expected, rootAccepts(t, m, input), "%s: %q", s, input)
			}
		}
	}
}

func TestCompositeIsStructural(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, "0: 3 5\n3: 7 3 | 7\n5: 7 5 9 | 7 9\n7: \"x\"\n9: \"y\"\n")
	c, ok := m.Composite()
	require.True(t, ok)
	assert.Equal(t, Composite{Rule: 0, Repeat: 3, Nest: 5, Body: 7, Tail: 9}, c)

	assert.True(t, rootAccepts(t, m, "xxy"))
	assert.True(t, rootAccepts(t, m, "xxxxyy"))
	assert.False(t, rootAccepts(t, m, "xxyy"))
}

func TestCompositeWithNonTerminalBody(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	rules := compositeRules + "\n"
	rules = strings.Replace(rules, `42: "a"`, "42: 1 2 | 2 1\n1: \"a\"\n2: \"b\"", 1)
	rules = strings.Replace(rules, `31: "b"`, `31: "c"`, 1)
	for _, s := range strategies {
		m := newTestMatcher(t, rules, WithStrategy(s))
		assert.True(t, rootAccepts(t, m, "abbac"), s.String())
		assert.True(t, rootAccepts(t, m, "ababbacc"), s.String())
		assert.False(t, rootAccepts(t, m, "abcc"), s.String())
	}
}

func TestAmbiguousSplit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	first := newTestMatcher(t, ambiguousRules)
	assert.True(t, rootAccepts(t, first, "aab"))
	assert.False(t, rootAccepts(t, first, "aaab"), "first match commits rule 1 to a single \"a\"")

	back := newTestMatcher(t, ambiguousRules, WithStrategy(Backtrack))
	assert.True(t, rootAccepts(t, back, "aab"))
	assert.True(t, rootAccepts(t, back, "aaab"))
	assert.False(t, rootAccepts(t, back, "aaaab"))
}

func TestMatchAll(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, compositeRules, WithStrategy(Backtrack))
	rests, e := m.MatchAll(8, "aaa")
	require.NoError(t, e)
	assert.Equal(t, []string{"aa", "a", ""}, rests)

	rests, e = m.MatchAll(11, "aabbb")
	require.NoError(t, e)
	assert.Equal(t, []string{"b"}, rests)

	rests, e = m.MatchAll(8, "b")
	require.NoError(t, e)
	assert.Nil(t, rests)

	rest, ok, e := m.MatchRoot("aabx")
	require.NoError(t, e)
	assert.True(t, ok)
	assert.Equal(t, "x", rest)
}

func TestDeterminism(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	for _, s := range strategies {
		m := newTestMatcher(t, compositeRules, WithStrategy(s))
		for i := 0; i < 3; i++ {
			assert.True(t, rootAccepts(t, m, "aaabb"))
			assert.False(t, rootAccepts(t, m, "aabb"))
		}
	}
}

func TestUnknownRule(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	for _, s := range strategies {
		m := newTestMatcher(t, simpleRules, WithStrategy(s))
		_, ok, e := m.Match(99, "a")
		assert.False(t, ok)
		test.ExpectErrorCode(t, grammar.UnknownRuleError, e)

		_, e = m.MatchAll(99, "a")
		test.ExpectErrorCode(t, grammar.UnknownRuleError, e)
	}
}

func TestMaxInputLen(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	for _, s := range strategies {
		m := newTestMatcher(t, compositeRules, WithStrategy(s), WithMaxInputLen(4))
		assert.Equal(t, 4, m.MaxInputLen())
		assert.True(t, rootAccepts(t, m, "aaab"))
		assert.False(t, rootAccepts(t, m, "aaaab"))

		_, ok, e := m.Match(8, "aaaaa")
		require.NoError(t, e)
		assert.False(t, ok)
	}

	m := newTestMatcher(t, "0: 1 1 1\n1: \"\u00e9\"\n", WithMaxInputLen(3))
	assert.True(t, rootAccepts(t, m, "\u00e9\u00e9\u00e9"), "limit counts characters, not bytes")
}

func TestNewErrors(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	samples := []struct {
		rules string
		opts  []Option
		code  int
	}{
		{"0: 1\n1: 2 | 0\n2: \"a\"\n", nil, UnsupportedRecursionError},
		{"0: 0 1 | 1\n1: \"a\"\n", nil, UnsupportedRecursionError},
		{"0: 1\n1: 1 1 | 2\n2: \"a\"\n", nil, UnsupportedRecursionError},
		{"0: 1\n1: 2\n2: 1 | 3\n3: \"a\"\n", nil, UnsupportedRecursionError},
		{nestedRules, []Option{RequireComposite()}, NotCompositeError},
		{simpleRules, []Option{WithMaxInputLen(0)}, WrongOptionError},
		{simpleRules, []Option{WithStrategy(Strategy(7))}, WrongOptionError},
	}

	for i, sample := range samples {
		g, e := ruledef.ParseRules("rules", sample.rules)
		require.NoError(t, e, "sample #%d", i)
		m, e := New(g, sample.opts...)
		assert.Nil(t, m, "sample #%d", i)
		test.ExpectErrorCode(t, sample.code, e)
	}
}

func TestMutualRecursionListing(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	g, e := ruledef.ParseRules("rules", "0: 12 | 3\n12: 3 0\n3: \"a\"\n")
	require.NoError(t, e)
	_, e = New(g)
	test.ExpectErrorCode(t, UnsupportedRecursionError, e)
	assert.Equal(t, "unsupported recursive rules: 0, 12", e.Error())
}

func TestRequireComposite(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()

	m := newTestMatcher(t, compositeRules, RequireComposite())
	_, ok := m.Composite()
	assert.True(t, ok)

	m = newTestMatcher(t, nestedRules)
	_, ok = m.Composite()
	assert.False(t, ok)
}

func TestParseStrategy(t *testing.T) {
	s, e := ParseStrategy(" Backtrack ")
	require.NoError(t, e)
	assert.Equal(t, Backtrack, s)

	s, e = ParseStrategy("first")
	require.NoError(t, e)
	assert.Equal(t, FirstMatch, s)

	_, e = ParseStrategy("earley")
	test.ExpectErrorCode(t, WrongOptionError, e)
	assert.Equal(t, "unknown", Strategy(9).String())
}
