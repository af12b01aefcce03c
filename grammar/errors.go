package grammar

import (
	"strings"

	"github.com/ava12/rulematch"
)

const (
	UnknownRuleError = iota + rulematch.GrammarErrors
	UndefinedReferenceError
	EmptyAlternativeError
	NegativeRuleError
	NoRootError
	WrongKindError
)

func unknownRuleError(id RuleID) *rulematch.Error {
	return rulematch.FormatError(UnknownRuleError, "unknown rule %d", id)
}

func undefinedReferenceError(refs []string) *rulematch.Error {
	return rulematch.FormatError(UndefinedReferenceError, "undefined rules referenced: "+strings.Join(refs, ", "))
}

func emptyAlternativeError(id RuleID, index int) *rulematch.Error {
	return rulematch.FormatError(EmptyAlternativeError, "rule %d: alternative #%d is empty", id, index)
}

func negativeRuleError(id RuleID) *rulematch.Error {
	return rulematch.FormatError(NegativeRuleError, "negative rule identifier %d", id)
}

func noRootError() *rulematch.Error {
	return rulematch.FormatError(NoRootError, "root rule %d is not defined", RootRule)
}

func wrongKindError(id RuleID) *rulematch.Error {
	return rulematch.FormatError(WrongKindError, "rule %d has no production kind", id)
}
