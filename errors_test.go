package rulematch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pos struct{}

func (pos) SourceName() string { return "rules" }
func (pos) Line() int { return 3 }
func (pos) Col() int { return 7 }

func TestFormatError(t *testing.T) {
	e := FormatError(GrammarErrors, "unknown rule %d", 99)
	assert.Equal(t, "unknown rule 99", e.Error())
	assert.Equal(t, GrammarErrors, e.Code)
	assert.Equal(t, "", e.SourceName)

	e = FormatErrorPos(pos{}, RuleDefErrors, "malformed rule")
	assert.Equal(t, "malformed rule in rules at line 3 col 7", e.Error())
	assert.Equal(t, 3, e.Line)
	assert.Equal(t, 7, e.Col)

	e = NewError(MatchErrors, "no position", "rules", 0, 0)
	assert.Equal(t, "no position", e.Error())
}

func TestHasCode(t *testing.T) {
	assert.True(t, HasCode(FormatError(ConfigErrors, "x"), ConfigErrors))
	assert.False(t, HasCode(FormatError(ConfigErrors, "x"), MatchErrors))
	assert.False(t, HasCode(errors.New("x"), ConfigErrors))
	assert.False(t, HasCode(nil, ConfigErrors))
}
