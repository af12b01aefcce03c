package matcher

import (
	"strings"

	"github.com/ava12/rulematch"
	"github.com/ava12/rulematch/grammar"
)

const (
	UnsupportedRecursionError = iota + rulematch.MatchErrors
	NotCompositeError
	WrongOptionError
)

func unsupportedRecursionError(ids []string) *rulematch.Error {
	return rulematch.FormatError(UnsupportedRecursionError, "unsupported recursive rules: "+strings.Join(ids, ", "))
}

func notCompositeError(id grammar.RuleID) *rulematch.Error {
	return rulematch.FormatError(NotCompositeError, "rule %d is not a composite of repetition and nested rules", id)
}

func wrongOptionError(msg string, params ...any) *rulematch.Error {
	return rulematch.FormatError(WrongOptionError, msg, params...)
}
