/*
Package rulematch decides membership of strings in languages defined by numbered production rules.

Consists of subpackages:
  - cmd/rulematch: console utility checking a message file against its rule block;
  - grammar: defines rule identifiers, productions and the read-only grammar mapping;
  - ruledef: converts rule text and message lists to grammar and message slices;
  - matcher: matches rules against input prefixes, resolves self-referential rule shapes;
  - source: defines source text with line and column lookup used in error reports;
  - validator: accepts whole messages and counts accepted ones.

Typical usage is:

1. Parse rule text and messages using ruledef subpackage.

2. Create new matcher for the grammar. Grammar structure errors are reported here,
before any message is evaluated.

3. Create validator for the matcher and feed it messages.
*/
package rulematch

import (
	"fmt"
)

// Code ranges, one per producing package. A range holds up to 100 codes.
const (
	RuleDefErrors = 1   // ruledef, rule text that cannot be read
	GrammarErrors = 101 // grammar, rules that do not form a grammar
	MatchErrors   = 201 // matcher, grammars the matcher refuses to handle
	ConfigErrors  = 301 // internal/config and cmd/rulematch
)

// Error reports rules or settings that cannot be used. A mismatching message is never an Error.
// Only ruledef errors carry a position; grammar and matcher errors name rules by id.
type Error struct {
	Code       int    // one of the codes declared in errors.go of the producing package
	Message    string // ends with " in <file> at line L col C" when position is known
	SourceName string // rule file name, empty for errors not tied to a file
	Line       int
	Col        int
}

// SourcePos locates an error inside a rule file, see source.Pos.
type SourcePos interface {
	SourceName() string
	Line() int
	Col() int
}

// NewError builds an Error, appending the location to msg only when name, line and col are all set.
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

func (e *Error) Error() string {
	return e.Message
}

// FormatError builds an Error without location, msg is a fmt format when params are given.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos is FormatError located at pos, which must not be nil.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}

// HasCode reports whether e is an *Error carrying given code.
func HasCode(e error, code int) bool {
	re, valid := e.(*Error)
	return valid && re.Code == code
}
