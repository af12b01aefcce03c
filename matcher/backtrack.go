package matcher

import (
	"unicode/utf8"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/ints"
)

// MatchAll matches rule id against the front of input keeping every feasible split,
// and returns all distinct remainders from the longest to the shortest one.
// Returns nil if rule id cannot match any prefix of input.
func (m *Matcher) MatchAll(id grammar.RuleID, input string) ([]string, error) {
	if m.tooLong(input) {
		return nil, nil
	}

	ends, e := m.ends(id, input)
	if e != nil || ends.IsEmpty() {
		return nil, e
	}

	offsets := ends.ToSlice()
	result := make([]string, len(offsets))
	for i, end := range offsets {
		result[i] = input[end:]
	}
	return result, nil
}

// ends returns byte offsets where a match of rule id starting at 0 may stop.
func (m *Matcher) ends(id grammar.RuleID, input string) (*ints.Set, error) {
	var mm *memo
	if m.memos == nil {
		mm = newMemo()
	} else {
		mm = m.memos.borrow()
		defer m.memos.release(mm)
	}

	s := &allSearch{m.grammar, input, mm}
	return s.rule(id, 0)
}

type allSearch struct {
	g     *grammar.Grammar
	input string
	memo  *memo
}

// rule returns end offsets of rule id matched at pos. Returned sets are owned by memo.
func (s *allSearch) rule(id grammar.RuleID, pos int) (*ints.Set, error) {
	key := memoKey{id, pos}
	if set, has := s.memo.ends[key]; has {
		return set, nil
	}

	p, e := s.g.Lookup(id)
	if e != nil {
		return nil, e
	}

	result := ints.NewSet()
	if p.IsTerminal() {
		r, size := utf8.DecodeRuneInString(s.input[pos:])
		if size > 0 && r == p.Char {
			result.Add(pos + size)
		}
	} else {
		for _, alt := range p.Alternatives {
			ends, e := s.sequence(alt, pos)
			if e != nil {
				return nil, e
			}
			result.Union(ends)
		}
	}

	s.memo.ends[key] = result
	return result, nil
}

// sequence returns end offsets of alt matched at pos trying every split between its rules.
func (s *allSearch) sequence(alt grammar.Alternative, pos int) (*ints.Set, error) {
	current := ints.NewSet(pos)
	for _, id := range alt {
		next := ints.NewSet()
		for _, start := range current.ToSlice() {
			ends, e := s.rule(id, start)
			if e != nil {
				return nil, e
			}
			next.Union(ends)
		}
		if next.IsEmpty() {
			return next, nil
		}
		current = next
	}
	return current, nil
}
