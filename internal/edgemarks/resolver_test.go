package edgemarks

import (
	"testing"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolve_EmptyCodes(t *testing.T) {
	none := model.EdgeMarks{}
	assert.Equal(t, none, Resolve(""))
	assert.Equal(t, none, Resolve("-"))
	assert.Equal(t, none, Resolve("   "))
	assert.Equal(t, none, Resolve(" - "))
}

func TestResolve_UnknownCodeHasNoMarks(t *testing.T) {
	assert.Equal(t, model.EdgeMarks{}, Resolve("XYZ"))
	assert.Equal(t, model.EdgeMarks{}, Resolve("LL"))
	assert.False(t, Recognized("XYZ"))
	assert.True(t, Recognized("-"))
	assert.True(t, Recognized("LM"))
}

func TestResolve_Table(t *testing.T) {
	tests := []struct {
		code string
		want model.EdgeMarks
		rule string
	}{
		{"OM", marks(tape, tape, tape, tape), "OM"},
		{"O", marks(tape, tape, tape, tape), "O"},
		{"UM-يمين", marks(tape, none, tape, tape), "UM-يمين"},
		{"UM-يسار", marks(tape, none, tape, tape), "UM-يسار"},
		{"UM", marks(tape, none, tape, tape), "UM"},
		{"CM", marks(none, tape, tape, tape), "CM"},
		{"C", marks(none, tape, tape, tape), "C"},
		{"LM-يمين", marks(tape, none, tape, groove), "LM-يمين"},
		{"LM-يسار", marks(tape, none, groove, tape), "LM-يسار"},
		{"LM", marks(tape, none, tape, none), "LM"},
		{"L", marks(tape, none, tape, none), "L"},
		{"IIM", marks(none, none, tape, groove), "IIM"},
		{"II", marks(none, none, tape, tape), "II"},
		{"IM", marks(none, none, tape, groove), "IM"},
		{"I", marks(none, none, tape, none), "I"},
		{`\\M`, marks(tape, tape, none, none), `\\M`},
		{`\\`, marks(tape, tape, none, none), `\\`},
		{`\M`, marks(tape, groove, none, none), `\M`},
		{`\`, marks(tape, none, none, none), `\`},
	}

	for _, tc := range tests {
		rule, got := Explain(tc.code)
		assert.Equal(t, tc.want, got, "code %q", tc.code)
		assert.Equal(t, tc.rule, rule, "code %q", tc.code)
	}
}

func TestResolve_OMIsNotShadowedByO(t *testing.T) {
	rule, m := Explain("OM")
	assert.Equal(t, "OM", rule)
	assert.Equal(t, Resolve("O"), m)
}

func TestResolve_LLDoesNotMatchBareL(t *testing.T) {
	assert.NotEqual(t, Resolve("L"), Resolve("LL"))
	rule, _ := Explain("LL")
	assert.Empty(t, rule)
}

func TestResolve_LongerTokensWin(t *testing.T) {
	rule, _ := Explain("IIM")
	assert.Equal(t, "IIM", rule, "IIM must not fall to II or IM")

	rule, _ = Explain("LM-يمين")
	assert.Equal(t, "LM-يمين", rule, "direction suffix must beat generic LM")

	rule, _ = Explain(`\\M`)
	assert.Equal(t, `\\M`, rule, `\\M must not fall to \M`)
}

func TestResolve_BackslashCodes(t *testing.T) {
	assert.Equal(t, model.EdgeMarks{Top: model.MarkTape}, Resolve(`\`))
	assert.Equal(t, model.EdgeMarks{Top: model.MarkTape, Bottom: model.MarkTape}, Resolve(`\\`))
	assert.Equal(t, model.EdgeMarks{Top: model.MarkTape, Bottom: model.MarkGroove}, Resolve(`\M`))
}

func TestResolve_CaseSensitive(t *testing.T) {
	assert.Equal(t, model.EdgeMarks{}, Resolve("lm"))
}

func TestRulesReturnsCopy(t *testing.T) {
	r := Rules()
	r[0].Name = "changed"
	assert.Equal(t, "OM", Rules()[0].Name)
	assert.Len(t, r, 19)
}
