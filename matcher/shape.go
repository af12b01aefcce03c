package matcher

import (
	"fmt"

	"github.com/ava12/rulematch/grammar"
)

// ShapeKind tells which self-referential pattern a rule follows.
type ShapeKind int

const (
	NoShape ShapeKind = iota
	// Repetition is "P: B | B P", one or more B.
	Repetition
	// Nested is "Q: B C | B Q C", n times B followed by n times C.
	Nested
)

func (k ShapeKind) String() string {
	switch k {
	case Repetition:
		return "repetition"
	case Nested:
		return "nested"
	default:
		return "none"
	}
}

// Shape describes a recognized self-referential rule.
// Tail is meaningful only for Nested shapes.
type Shape struct {
	Kind ShapeKind
	Rule grammar.RuleID
	Body grammar.RuleID
	Tail grammar.RuleID
}

func (s Shape) String() string {
	switch s.Kind {
	case Repetition:
		return fmt.Sprintf("%d: repetition of %d", s.Rule, s.Body)
	case Nested:
		return fmt.Sprintf("%d: nested %d ... %d", s.Rule, s.Body, s.Tail)
	default:
		return fmt.Sprintf("%d: no shape", s.Rule)
	}
}

// DetectShape checks alternatives of rule id structurally, their order does not matter.
func DetectShape(g *grammar.Grammar, id grammar.RuleID) (Shape, bool) {
	p, e := g.Lookup(id)
	if e != nil || p.IsTerminal() || len(p.Alternatives) != 2 {
		return Shape{Rule: id}, false
	}

	short, long := p.Alternatives[0], p.Alternatives[1]
	if len(short) > len(long) {
		short, long = long, short
	}

	switch {
	case len(short) == 1 && len(long) == 2:
		body := short[0]
		if body != id && long.Equal(grammar.Alt(body, id)) {
			return Shape{Kind: Repetition, Rule: id, Body: body}, true
		}

	case len(short) == 2 && len(long) == 3:
		body, tail := short[0], short[1]
		if body != id && tail != id && long.Equal(grammar.Alt(body, id, tail)) {
			return Shape{Kind: Nested, Rule: id, Body: body, Tail: tail}, true
		}
	}

	return Shape{Rule: id}, false
}

// Composite describes "R: P Q" rule where P is Repetition of Body and Q is Nested
// over the same Body and a distinct Tail. It accepts Body n+m times followed
// by Tail m times, n >= 1, m >= 1.
type Composite struct {
	Rule   grammar.RuleID
	Repeat grammar.RuleID
	Nest   grammar.RuleID
	Body   grammar.RuleID
	Tail   grammar.RuleID
}

func (c Composite) String() string {
	return fmt.Sprintf("%d: composite %d %d, %d{n+m} %d{m}", c.Rule, c.Repeat, c.Nest, c.Body, c.Tail)
}

// DetectComposite checks whether rule id is Composite.
func DetectComposite(g *grammar.Grammar, id grammar.RuleID) (Composite, bool) {
	p, e := g.Lookup(id)
	if e != nil || p.IsTerminal() || len(p.Alternatives) != 1 || len(p.Alternatives[0]) != 2 {
		return Composite{}, false
	}

	alt := p.Alternatives[0]
	rep, isRep := DetectShape(g, alt[0])
	nest, isNest := DetectShape(g, alt[1])
	if !isRep || !isNest || rep.Kind != Repetition || nest.Kind != Nested {
		return Composite{}, false
	}
	if rep.Body != nest.Body || nest.Tail == nest.Body {
		return Composite{}, false
	}

	return Composite{
		Rule:   id,
		Repeat: rep.Rule,
		Nest:   nest.Rule,
		Body:   rep.Body,
		Tail:   nest.Tail,
	}, true
}

// Shapes returns all recognized self-referential rules of g ordered by identifier.
func Shapes(g *grammar.Grammar) []Shape {
	var result []Shape
	for _, id := range g.IDs() {
		if s, ok := DetectShape(g, id); ok {
			result = append(result, s)
		}
	}
	return result
}
