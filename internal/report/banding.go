package report

import (
	"github.com/piwi3910/cutprint/internal/edgemarks"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/shopspring/decimal"
)

// BandingSummary holds the edge banding and grooving requirements for a project.
type BandingSummary struct {
	TapeLengthM        decimal.Decimal `json:"tape_length_m"`        // Tape in metres, no waste
	TapeWithWasteM     decimal.Decimal `json:"tape_with_waste_m"`    // Tape in metres incl. waste, rounded up to the cm
	GrooveLengthM      decimal.Decimal `json:"groove_length_m"`      // Routed groove length in metres
	WastePercent       float64         `json:"waste_percent"`        // Waste percentage applied to tape
	PieceCount         int             `json:"piece_count"`          // Pieces with at least one marked edge
	TapedEdgeCount     int             `json:"taped_edge_count"`     // Taped edges across all pieces
	GroovedEdgeCount   int             `json:"grooved_edge_count"`   // Grooved edges across all pieces
	UnmatchedEdgeCodes []string        `json:"unmatched_edge_codes"` // Codes no rule understood, first-seen order
	Parts              []PartBanding   `json:"parts"`                // Per-part breakdown
}

// PartBanding is the banding breakdown for one part row.
type PartBanding struct {
	UnitLabel     string          `json:"unit_label"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"display_name"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	Quantity      int             `json:"quantity"`
	EdgeCode      string          `json:"edge_code"`
	Marks         model.EdgeMarks `json:"marks"`
	TapePerPieceM decimal.Decimal `json:"tape_per_piece_m"`
	TapeTotalM    decimal.Decimal `json:"tape_total_m"`
	GrooveTotalM  decimal.Decimal `json:"groove_total_m"`
}

var cmPerMetre = decimal.NewFromInt(100)

// edgeLength sums the lengths of the edges carrying mark m, in cm.
// Top and bottom run along the width, left and right along the height.
func edgeLength(marks model.EdgeMarks, w, h decimal.Decimal, m model.Mark) decimal.Decimal {
	total := decimal.Zero
	if marks.Top == m {
		total = total.Add(w)
	}
	if marks.Bottom == m {
		total = total.Add(w)
	}
	if marks.Left == m {
		total = total.Add(h)
	}
	if marks.Right == m {
		total = total.Add(h)
	}
	return total
}

// CalculateBanding computes tape and groove lengths for a cut list.
// wastePercent is added on top of the tape length (e.g., 10 for 10%); a
// non-finite percentage counts as no waste. Parts whose dimensions are not
// finite are left out of the totals.
func CalculateBanding(list CutList, wastePercent float64) BandingSummary {
	if !finite(wastePercent) {
		wastePercent = 0
	}
	summary := BandingSummary{
		WastePercent:       wastePercent,
		UnmatchedEdgeCodes: []string{},
		Parts:              []PartBanding{},
	}
	tapeCM := decimal.Zero
	grooveCM := decimal.Zero
	seen := map[string]bool{}

	for _, s := range list.Sections() {
		for _, g := range s.Groups {
			for _, p := range g.Parts {
				if !p.Marks.HasAny() {
					if !edgemarks.Recognized(p.EdgeCode) && !seen[p.EdgeCode] {
						seen[p.EdgeCode] = true
						summary.UnmatchedEdgeCodes = append(summary.UnmatchedEdgeCodes, p.EdgeCode)
					}
					continue
				}
				if !finite(p.Width) || !finite(p.Height) {
					continue
				}
				w := decimal.NewFromFloat(p.Width)
				h := decimal.NewFromFloat(p.Height)
				qty := decimal.NewFromInt(int64(p.Pieces))

				tapePiece := edgeLength(p.Marks, w, h, model.MarkTape)
				groovePiece := edgeLength(p.Marks, w, h, model.MarkGroove)
				tapeCM = tapeCM.Add(tapePiece.Mul(qty))
				grooveCM = grooveCM.Add(groovePiece.Mul(qty))

				summary.PieceCount += p.Pieces
				summary.TapedEdgeCount += p.Marks.Count(model.MarkTape) * p.Pieces
				summary.GroovedEdgeCount += p.Marks.Count(model.MarkGroove) * p.Pieces

				summary.Parts = append(summary.Parts, PartBanding{
					UnitLabel:     g.UnitLabel,
					Name:          p.Name,
					DisplayName:   p.DisplayName,
					Width:         p.Width,
					Height:        p.Height,
					Quantity:      p.Pieces,
					EdgeCode:      p.EdgeCode,
					Marks:         p.Marks,
					TapePerPieceM: tapePiece.Div(cmPerMetre),
					TapeTotalM:    tapePiece.Mul(qty).Div(cmPerMetre),
					GrooveTotalM:  groovePiece.Mul(qty).Div(cmPerMetre),
				})
			}
		}
	}

	wasteFactor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(wastePercent).Div(decimal.NewFromInt(100)))
	summary.TapeLengthM = tapeCM.Div(cmPerMetre)
	summary.TapeWithWasteM = tapeCM.Mul(wasteFactor).Ceil().Div(cmPerMetre)
	summary.GrooveLengthM = grooveCM.Div(cmPerMetre)
	return summary
}
