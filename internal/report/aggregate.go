// Package report builds the printable cut list of a project: parts are
// grouped per unit into the main, back-panel and door sections, each
// enriched with display names and resolved edge marks.
package report

import (
	"fmt"
	"math"
	"strconv"

	"github.com/piwi3910/cutprint/internal/edgemarks"
	"github.com/piwi3910/cutprint/internal/labels"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/shopspring/decimal"
)

// EnrichedPart is a part as printed: the original record plus derived fields.
type EnrichedPart struct {
	model.Part
	DisplayName string             `json:"display_name"`
	Category    model.PartCategory `json:"category"`
	Marks       model.EdgeMarks    `json:"marks"`
	Pieces      int                `json:"display_quantity"`
}

// UnitGroup is the block of rows one unit contributes to a section.
type UnitGroup struct {
	UnitID    string         `json:"unit_id,omitempty"`
	UnitType  string         `json:"unit_type"`
	UnitWidth float64        `json:"unit_width"`
	UnitLabel string         `json:"unit_label"`
	Parts     []EnrichedPart `json:"parts"`
}

// CutList is the grouped output consumed by the report writers.
type CutList struct {
	ProjectID   string      `json:"project_id"`
	ProjectName string      `json:"project_name"`
	ClientName  string      `json:"client_name"`
	MainRows    []UnitGroup `json:"main_rows"`
	BackRows    []UnitGroup `json:"back_rows"`
	DoorRows    []UnitGroup `json:"door_rows"`
}

// Section pairs a bucket with its rows, in print order.
type Section struct {
	Category model.PartCategory
	Title    string
	Groups   []UnitGroup
}

// Sections returns the three buckets in the order they are printed.
func (c CutList) Sections() []Section {
	return []Section{
		{Category: model.CategoryMain, Title: "Main parts", Groups: c.MainRows},
		{Category: model.CategoryBackPanel, Title: "Back panels", Groups: c.BackRows},
		{Category: model.CategoryDoorFront, Title: "Doors & fronts", Groups: c.DoorRows},
	}
}

// Parts returns every enriched part of the cut list in print order.
func (c CutList) Parts() []EnrichedPart {
	var parts []EnrichedPart
	for _, s := range c.Sections() {
		for _, g := range s.Groups {
			parts = append(parts, g.Parts...)
		}
	}
	return parts
}

// FormatCM renders a centimetre value in its shortest decimal form (60, 60.5).
// NaN and infinities are printed as strconv spells them.
func FormatCM(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// UnitLabel returns the heading printed above a unit's rows.
func UnitLabel(u model.Unit) string {
	return fmt.Sprintf("%s (%scm)", labels.UnitTypeLabel(u.Type), FormatCM(u.Width))
}

// Enrich derives the printed form of a single part.
func Enrich(p model.Part) EnrichedPart {
	return EnrichedPart{
		Part:        p.Clone(),
		DisplayName: labels.PartNameLabel(p.Name),
		Category:    labels.Classify(p.Name),
		Marks:       edgemarks.Resolve(p.EdgeCode),
		Pieces:      p.DisplayQuantity(),
	}
}

// Aggregate walks the project's units and parts in order and groups the
// enriched parts per unit into the three sections. A unit only gets a
// group in a section it contributes at least one part to.
func Aggregate(p model.Project) CutList {
	out := CutList{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		ClientName:  p.ClientName,
		MainRows:    []UnitGroup{},
		BackRows:    []UnitGroup{},
		DoorRows:    []UnitGroup{},
	}

	for _, u := range p.Units {
		var main, back, door []EnrichedPart
		for _, part := range u.Parts {
			ep := Enrich(part)
			switch ep.Category {
			case model.CategoryDoorFront:
				door = append(door, ep)
			case model.CategoryBackPanel:
				back = append(back, ep)
			default:
				main = append(main, ep)
			}
		}

		label := UnitLabel(u)
		group := func(parts []EnrichedPart) UnitGroup {
			return UnitGroup{UnitID: u.ID, UnitType: u.Type, UnitWidth: u.Width, UnitLabel: label, Parts: parts}
		}
		if len(main) > 0 {
			out.MainRows = append(out.MainRows, group(main))
		}
		if len(back) > 0 {
			out.BackRows = append(out.BackRows, group(back))
		}
		if len(door) > 0 {
			out.DoorRows = append(out.DoorRows, group(door))
		}
	}

	return out
}
