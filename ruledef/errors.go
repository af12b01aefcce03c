package ruledef

import (
	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/source"
)

const (
	SyntaxError = iota + rulematch.RuleDefErrors
	DuplicateRuleError
	LiteralLengthError
	ReadError
)

func syntaxError(pos source.Pos, msg string) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, SyntaxError, "malformed rule: %s", msg)
}

func duplicateRuleError(pos source.Pos, id grammar.RuleID) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, DuplicateRuleError, "rule %d already defined", id)
}

func literalLengthError(pos source.Pos, text string) *rulematch.Error {
	return rulematch.FormatErrorPos(pos, LiteralLengthError, "terminal %q must be exactly one character", text)
}

func readError(name string, e error) *rulematch.Error {
	return rulematch.FormatError(ReadError, "cannot read %s: %s", name, e.Error())
}
