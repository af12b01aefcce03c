// Package ruledef converts rule text and message lists to structures consumed by matcher and validator.
//
// Rule text contains one rule per line, either a terminal
//
//	4: "a"
//
// or a non-terminal with alternatives separated by "|":
//
//	1: 2 3 | 3 2
//
// Input text is a rule block followed by an empty line and messages, one per line.
package ruledef

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/unicode/norm"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/source"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

type ruleLine struct {
	ID           int            `parser:"@Int \":\""`
	Literal      *string        `parser:"( @String"`
	Alternatives []*alternative `parser:"| @@ ( \"|\" @@ )* )"`
}

type alternative struct {
	Refs []int `parser:"@Int+"`
}

var lineParser = participle.MustBuild(&ruleLine{})

// Option modifies parsing behaviour.
type Option func(*config)

type config struct {
	nfc bool
}

// NFC makes parser normalize terminal literals and messages to Unicode normalization form C,
// so precomposed and decomposed spellings of the same character match each other.
func NFC() Option {
	return func(c *config) {
		c.nfc = true
	}
}

func newConfig(opts []Option) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) normalize(s string) string {
	if c.nfc {
		return norm.NFC.String(s)
	}
	return s
}

// Input is a parsed input file.
type Input struct {
	Grammar  *grammar.Grammar
	Messages []string
}

// ParseLine parses single rule line.
func ParseLine(line string, opts ...Option) (grammar.RuleID, grammar.Production, error) {
	src := source.New("", []byte(line))
	return parseLine(src, 1, newConfig(opts))
}

// ParseRules parses rule text and returns checked grammar on success.
// Empty lines are skipped. Returns nil and *rulematch.Error on error.
func ParseRules(name, text string, opts ...Option) (*grammar.Grammar, error) {
	src := source.New(name, []byte(text))
	rules, _, e := parseRuleBlock(src, newConfig(opts), false)
	if e != nil {
		return nil, e
	}

	return grammar.New(rules)
}

// ParseInput parses rule block, empty separator line, and messages.
// Empty message lines are skipped. Grammar errors are reported before any message is returned.
func ParseInput(name string, content []byte, opts ...Option) (*Input, error) {
	c := newConfig(opts)
	src := source.New(name, content)
	rules, next, e := parseRuleBlock(src, c, true)
	if e != nil {
		return nil, e
	}

	g, e := grammar.New(rules)
	if e != nil {
		return nil, e
	}

	var messages []string
	for n := next; n <= src.LineCount(); n++ {
		line := src.Line(n)
		if line == "" {
			continue
		}
		messages = append(messages, c.normalize(line))
	}

	T().Debugf("%s: %d rules, %d messages", name, g.Len(), len(messages))
	return &Input{Grammar: g, Messages: messages}, nil
}

// ParseFile reads input file and parses it with ParseInput.
func ParseFile(name string, opts ...Option) (*Input, error) {
	content, e := os.ReadFile(name)
	if e != nil {
		return nil, readError(name, e)
	}
	return ParseInput(name, content, opts...)
}

func parseRuleBlock(src *source.Source, c *config, stopAtBlank bool) (map[grammar.RuleID]grammar.Production, int, error) {
	rules := make(map[grammar.RuleID]grammar.Production)
	n := 1
	for ; n <= src.LineCount(); n++ {
		if strings.TrimSpace(src.Line(n)) == "" {
			if stopAtBlank {
				n++
				break
			}
			continue
		}

		id, p, e := parseLine(src, n, c)
		if e != nil {
			return nil, 0, e
		}

		if _, has := rules[id]; has {
			return nil, 0, duplicateRuleError(src.AtLine(n, 1), id)
		}
		rules[id] = p
	}

	return rules, n, nil
}

type positioned interface {
	Position() lexer.Position
}

func parseLine(src *source.Source, n int, c *config) (grammar.RuleID, grammar.Production, error) {
	line := &ruleLine{}
	e := lineParser.ParseString(src.Line(n), line)
	if e != nil {
		col := 1
		if pe, valid := e.(positioned); valid && pe.Position().Column > 0 {
			col = pe.Position().Column
		}
		return 0, grammar.Production{}, syntaxError(src.AtLine(n, col), e.Error())
	}

	id := grammar.RuleID(line.ID)
	if line.Literal != nil || len(line.Alternatives) == 0 {
		text := ""
		if line.Literal != nil {
			text = c.normalize(*line.Literal)
		}
		if utf8.RuneCountInString(text) != 1 {
			return 0, grammar.Production{}, literalLengthError(src.AtLine(n, 1), text)
		}

		r, _ := utf8.DecodeRuneInString(text)
		return id, grammar.Terminal(r), nil
	}

	alts := make([]grammar.Alternative, len(line.Alternatives))
	for i, alt := range line.Alternatives {
		alts[i] = make(grammar.Alternative, len(alt.Refs))
		for j, ref := range alt.Refs {
			alts[i][j] = grammar.RuleID(ref)
		}
	}
	return id, grammar.NonTerminal(alts...), nil
}
