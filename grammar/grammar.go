// Package grammar defines the read-only grammar mapping consumed by matcher.
//
// Rules are addressed by integer identifiers and stored in a flat table, so
// self-referential rules are plain identifier references, never pointers.
package grammar

import (
	"sort"
	"strconv"
	"strings"
)

// RuleID identifies a rule. Valid identifiers are non-negative.
type RuleID int

// RootRule is the entry rule of every grammar.
const RootRule RuleID = 0

// Kind tells the shape of a Production.
type Kind int

const (
	TerminalKind Kind = iota + 1
	NonTerminalKind
)

// Alternative is an ordered sequence of rule references that must match consecutively.
type Alternative []RuleID

// Production is either a terminal (single character) or a non-terminal (ordered alternatives).
type Production struct {
	Kind         Kind
	Char         rune
	Alternatives []Alternative
}

// Terminal creates a production matching exactly c.
func Terminal(c rune) Production {
	return Production{Kind: TerminalKind, Char: c}
}

// NonTerminal creates a production trying alts in given order.
func NonTerminal(alts ...Alternative) Production {
	return Production{Kind: NonTerminalKind, Alternatives: alts}
}

// Alt is a shorthand for Alternative literal.
func Alt(ids ...RuleID) Alternative {
	return Alternative(ids)
}

// IsTerminal reports whether p matches a single character.
func (p Production) IsTerminal() bool {
	return p.Kind == TerminalKind
}

func (p Production) String() string {
	if p.IsTerminal() {
		return strconv.Quote(string(p.Char))
	}

	parts := make([]string, len(p.Alternatives))
	for i, alt := range p.Alternatives {
		parts[i] = alt.String()
	}
	return strings.Join(parts, " | ")
}

func (a Alternative) String() string {
	ids := make([]string, len(a))
	for i, id := range a {
		ids[i] = strconv.Itoa(int(id))
	}
	return strings.Join(ids, " ")
}

// Equal reports whether both alternatives reference the same rules in the same order.
func (a Alternative) Equal(b Alternative) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Grammar maps rule identifiers to productions. It is never modified after New returns.
type Grammar struct {
	rules map[RuleID]Production
	ids   []RuleID
}

// New copies rules into a new grammar and checks it:
// every referenced identifier must be defined, identifiers must be non-negative,
// alternatives must not be empty, and the root rule must be present.
// Returns nil and *rulematch.Error on failure.
func New(rules map[RuleID]Production) (*Grammar, error) {
	g := &Grammar{
		rules: make(map[RuleID]Production, len(rules)),
		ids:   make([]RuleID, 0, len(rules)),
	}

	for id, p := range rules {
		if id < 0 {
			return nil, negativeRuleError(id)
		}

		if !p.IsTerminal() {
			alts := make([]Alternative, len(p.Alternatives))
			for i, alt := range p.Alternatives {
				alts[i] = append(Alternative(nil), alt...)
			}
			p.Alternatives = alts
		}
		g.rules[id] = p
		g.ids = append(g.ids, id)
	}
	sort.Slice(g.ids, func(i, j int) bool { return g.ids[i] < g.ids[j] })

	if e := g.check(); e != nil {
		return nil, e
	}

	return g, nil
}

func (g *Grammar) check() error {
	if _, has := g.rules[RootRule]; !has {
		return noRootError()
	}

	var undefined []string
	for _, id := range g.ids {
		p := g.rules[id]
		switch p.Kind {
		case TerminalKind:
			continue
		case NonTerminalKind:
		default:
			return wrongKindError(id)
		}

		if len(p.Alternatives) == 0 {
			return emptyAlternativeError(id, 0)
		}
		for i, alt := range p.Alternatives {
			if len(alt) == 0 {
				return emptyAlternativeError(id, i)
			}
			for _, ref := range alt {
				if _, has := g.rules[ref]; !has {
					undefined = append(undefined, strconv.Itoa(int(id))+" -> "+strconv.Itoa(int(ref)))
				}
			}
		}
	}

	if len(undefined) > 0 {
		return undefinedReferenceError(undefined)
	}
	return nil
}

// Lookup returns production for id or UnknownRuleError.
func (g *Grammar) Lookup(id RuleID) (Production, error) {
	p, has := g.rules[id]
	if !has {
		return Production{}, unknownRuleError(id)
	}
	return p, nil
}

// Len returns the number of rules.
func (g *Grammar) Len() int {
	return len(g.ids)
}

// IDs returns defined identifiers in ascending order.
func (g *Grammar) IDs() []RuleID {
	return append([]RuleID(nil), g.ids...)
}

// References returns distinct identifiers referenced by rule id in order of first appearance.
// Terminal and unknown rules reference nothing.
func (g *Grammar) References(id RuleID) []RuleID {
	p := g.rules[id]
	var result []RuleID
	seen := make(map[RuleID]bool)
	for _, alt := range p.Alternatives {
		for _, ref := range alt {
			if !seen[ref] {
				seen[ref] = true
				result = append(result, ref)
			}
		}
	}
	return result
}

// String renders the grammar back to rule text, one rule per line, ordered by identifier.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, id := range g.ids {
		sb.WriteString(strconv.Itoa(int(id)))
		sb.WriteString(": ")
		sb.WriteString(g.rules[id].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
