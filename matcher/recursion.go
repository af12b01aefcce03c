package matcher

import (
	"strconv"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/ava12/rulematch/grammar"
)

type sccNode struct {
	index, low int
	onStack    bool
}

type sccSearch struct {
	g       *grammar.Grammar
	nodes   map[grammar.RuleID]*sccNode
	stack   *arraystack.Stack
	counter int
	bad     *treeset.Set
}

// checkRecursion finds strongly connected components of the rule graph.
// Only single-rule components looping through a Repetition or Nested shape are allowed.
func checkRecursion(g *grammar.Grammar) error {
	s := &sccSearch{
		g:     g,
		nodes: make(map[grammar.RuleID]*sccNode, g.Len()),
		stack: arraystack.New(),
		bad:   treeset.NewWithIntComparator(),
	}

	for _, id := range g.IDs() {
		if s.nodes[id] == nil {
			s.visit(id)
		}
	}

	if s.bad.Empty() {
		return nil
	}

	ids := make([]string, 0, s.bad.Size())
	for _, v := range s.bad.Values() {
		ids = append(ids, strconv.Itoa(v.(int)))
	}
	return unsupportedRecursionError(ids)
}

func (s *sccSearch) visit(id grammar.RuleID) *sccNode {
	node := &sccNode{index: s.counter, low: s.counter, onStack: true}
	s.counter++
	s.nodes[id] = node
	s.stack.Push(id)

	selfLoop := false
	for _, ref := range s.g.References(id) {
		if ref == id {
			selfLoop = true
			continue
		}

		next := s.nodes[ref]
		if next == nil {
			next = s.visit(ref)
			node.low = min(node.low, next.low)
		} else if next.onStack {
			node.low = min(node.low, next.index)
		}
	}

	if node.low != node.index {
		return node
	}

	var component []grammar.RuleID
	for {
		v, _ := s.stack.Pop()
		member := v.(grammar.RuleID)
		s.nodes[member].onStack = false
		component = append(component, member)
		if member == id {
			break
		}
	}

	switch {
	case len(component) > 1:
		for _, member := range component {
			s.bad.Add(int(member))
		}
	case selfLoop:
		if _, ok := DetectShape(s.g, id); !ok {
			s.bad.Add(int(id))
		}
	}
	return node
}
