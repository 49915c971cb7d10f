// Package edgemarks translates the edge-banding shorthand written on
// shop-floor cut lists into per-edge tape and groove marks.
package edgemarks

import (
	"strings"

	"github.com/piwi3910/cutprint/internal/model"
)

// Direction suffixes used to tell mirrored corner codes apart.
const (
	DirRight = "يمين"
	DirLeft  = "يسار"
)

const (
	tape   = model.MarkTape
	groove = model.MarkGroove
	none   = model.MarkNone
)

// Rule is one entry of the ordered rule table.
type Rule struct {
	Name  string
	Match func(code string) bool
	Marks model.EdgeMarks
}

func contains(token string) func(string) bool {
	return func(code string) bool { return strings.Contains(code, token) }
}

func containsNot(token, excluded string) func(string) bool {
	return func(code string) bool {
		return strings.Contains(code, token) && !strings.Contains(code, excluded)
	}
}

func marks(top, bottom, left, right model.Mark) model.EdgeMarks {
	return model.EdgeMarks{Top: top, Bottom: bottom, Left: left, Right: right}
}

// rules is evaluated top to bottom and the first match wins. Several tokens
// are substrings of later ones ("L" of "LM", "I" of "IIM"), so the longer
// tokens must stay ahead of the shorter ones.
var rules = []Rule{
	{"OM", contains("OM"), marks(tape, tape, tape, tape)},
	{"O", contains("O"), marks(tape, tape, tape, tape)},
	{"UM-" + DirRight, contains("UM-" + DirRight), marks(tape, none, tape, tape)},
	{"UM-" + DirLeft, contains("UM-" + DirLeft), marks(tape, none, tape, tape)},
	{"UM", contains("UM"), marks(tape, none, tape, tape)},
	{"CM", contains("CM"), marks(none, tape, tape, tape)},
	{"C", contains("C"), marks(none, tape, tape, tape)},
	{"LM-" + DirRight, contains("LM-" + DirRight), marks(tape, none, tape, groove)},
	{"LM-" + DirLeft, contains("LM-" + DirLeft), marks(tape, none, groove, tape)},
	{"LM", contains("LM"), marks(tape, none, tape, none)},
	{"L", containsNot("L", "LL"), marks(tape, none, tape, none)},
	{"IIM", contains("IIM"), marks(none, none, tape, groove)},
	{"II", contains("II"), marks(none, none, tape, tape)},
	{"IM", contains("IM"), marks(none, none, tape, groove)},
	{"I", contains("I"), marks(none, none, tape, none)},
	{`\\M`, contains(`\\M`), marks(tape, tape, none, none)},
	{`\\`, contains(`\\`), marks(tape, tape, none, none)},
	{`\M`, contains(`\M`), marks(tape, groove, none, none)},
	{`\`, contains(`\`), marks(tape, none, none, none)},
}

// NoMark is the code meaning "no edges treated".
const NoMark = "-"

// Rules returns a copy of the ordered rule table.
func Rules() []Rule {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return cp
}

// Explain returns the name of the rule that matched code along with its
// marks. The name is empty when no rule matched.
func Explain(code string) (string, model.EdgeMarks) {
	code = strings.TrimSpace(code)
	if code == "" || code == NoMark {
		return "", model.EdgeMarks{}
	}
	for _, r := range rules {
		if r.Match(code) {
			return r.Name, r.Marks
		}
	}
	return "", model.EdgeMarks{}
}

// Resolve returns the edge marks for an edge-banding code. Unknown,
// empty and "-" codes resolve to no marks.
func Resolve(code string) model.EdgeMarks {
	_, m := Explain(code)
	return m
}

// Recognized reports whether code is a no-mark code or matches a rule.
func Recognized(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" || code == NoMark {
		return true
	}
	name, _ := Explain(code)
	return name != ""
}
