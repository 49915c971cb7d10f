// Package export renders cut lists to printable and machine-readable
// formats: PDF cut sheets, QR part labels, Excel workbooks and DXF drawings.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
)

// Options controls PDF rendering.
type Options struct {
	// FontPath points at a UTF-8 TrueType font with Arabic glyphs. When
	// empty the core Helvetica font is used and raw keys are printed
	// instead of Arabic labels. fpdf neither shapes Arabic nor reorders
	// right-to-left runs, so with a font set Arabic text prints as
	// isolated letters in logical order.
	FontPath    string
	GeneratedAt time.Time
	Banding     *report.BandingSummary
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 14.0
	rowHeight    = 8.0
	groupHeight  = 7.0
)

const unicodeFamily = "cutprint"

// columns of the part table.
var partColumns = []struct {
	title string
	width float64
	align string
}{
	{"Part", 48, "L"},
	{"W (cm)", 18, "C"},
	{"H (cm)", 18, "C"},
	{"Qty", 12, "C"},
	{"Edge", 20, "C"},
	{"Edges", 22, "C"},
	{"Notes", 48, "L"},
}

// typeface switches between a UTF-8 font with Arabic labels and the
// latin-only core font with raw keys.
type typeface struct {
	family  string
	unicode bool
}

func newDocument(orientation, size string, opts Options) (*fpdf.Fpdf, typeface, error) {
	pdf := fpdf.New(orientation, "mm", size, "")
	pdf.SetAutoPageBreak(false, marginBottom)

	if opts.FontPath == "" {
		return pdf, typeface{family: "Helvetica"}, nil
	}
	pdf.AddUTF8Font(unicodeFamily, "", opts.FontPath)
	pdf.AddUTF8Font(unicodeFamily, "B", opts.FontPath)
	if err := pdf.Error(); err != nil {
		return nil, typeface{}, fmt.Errorf("load font %s: %w", opts.FontPath, err)
	}
	return pdf, typeface{family: unicodeFamily, unicode: true}, nil
}

// text passes s through when the font can encode it.
func (tf typeface) text(s string) string {
	if tf.unicode {
		return s
	}
	return latinOnly(s)
}

func (tf typeface) partName(p report.EnrichedPart) string {
	if tf.unicode {
		return p.DisplayName
	}
	return latinOnly(p.Name)
}

func (tf typeface) unitHeading(g report.UnitGroup) string {
	if tf.unicode {
		return g.UnitLabel
	}
	return latinOnly(fmt.Sprintf("%s (%scm)", g.UnitType, report.FormatCM(g.UnitWidth)))
}

func (tf typeface) glyph(m model.Mark) string {
	if tf.unicode {
		return m.Glyph()
	}
	return m.ASCIIGlyph()
}

// WritePDF renders the cut list as a PDF document to w. Each section
// (main parts, back panels, doors) starts on a new page; a summary page
// with edge banding totals closes the document when opts.Banding is set.
func WritePDF(w io.Writer, list report.CutList, opts Options) error {
	if len(list.Parts()) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf, tf, err := newDocument("P", "A4", opts)
	if err != nil {
		return err
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	for _, section := range list.Sections() {
		if len(section.Groups) == 0 {
			continue
		}
		pdf.AddPage()
		y := renderPageHeader(pdf, tf, list, section.Title, opts.GeneratedAt)
		y = renderTableHeader(pdf, tf, y)

		for _, g := range section.Groups {
			if y+groupHeight+rowHeight > pageHeight-marginBottom {
				pdf.AddPage()
				y = renderPageHeader(pdf, tf, list, section.Title+" (cont.)", opts.GeneratedAt)
				y = renderTableHeader(pdf, tf, y)
			}
			y = renderGroupHeader(pdf, tf, g, y)

			for i, p := range g.Parts {
				if y+rowHeight > pageHeight-marginBottom {
					pdf.AddPage()
					y = renderPageHeader(pdf, tf, list, section.Title+" (cont.)", opts.GeneratedAt)
					y = renderTableHeader(pdf, tf, y)
				}
				renderPartRow(pdf, tf, p, y, i%2 == 0)
				y += rowHeight
			}
		}
	}

	if opts.Banding != nil {
		pdf.AddPage()
		renderBandingPage(pdf, tf, list, *opts.Banding, opts.GeneratedAt)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes the cut list PDF to path.
func ExportPDF(path string, list report.CutList, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return WritePDF(w, list, opts)
	})
}

// renderPageHeader draws the title block and returns the y position below it.
func renderPageHeader(pdf *fpdf.Fpdf, tf typeface, list report.CutList, title string, at time.Time) float64 {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont(tf.family, "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 7, tf.text(fmt.Sprintf("%s - %s", list.ProjectName, title)), "", 0, "L", false, 0, "")

	pdf.SetFont(tf.family, "", 9)
	pdf.SetXY(marginLeft, marginTop+7)
	info := fmt.Sprintf("Project %s | Date %s", list.ProjectID, at.Format("2006-01-02"))
	if list.ClientName != "" {
		info = fmt.Sprintf("Client %s | %s", list.ClientName, info)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tf.text(info), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, marginTop+13, pageWidth-marginRight, marginTop+13)

	renderFooter(pdf, tf)
	return marginTop + 16
}

func renderFooter(pdf *fpdf.Fpdf, tf typeface) {
	pdf.SetFont(tf.family, "", 7)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom+4)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, fmt.Sprintf("CutPrint cut list - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderTableHeader(pdf *fpdf.Fpdf, tf typeface, y float64) float64 {
	pdf.SetFont(tf.family, "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	x := marginLeft
	for _, col := range partColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.width, 6, col.title, "1", 0, "C", true, 0, "")
		x += col.width
	}
	return y + 6
}

func renderGroupHeader(pdf *fpdf.Fpdf, tf typeface, g report.UnitGroup, y float64) float64 {
	pdf.SetFont(tf.family, "B", 10)
	pdf.SetFillColor(210, 225, 240)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(tableWidth(), groupHeight, tf.unitHeading(g), "1", 0, "L", true, 0, "")
	return y + groupHeight
}

func renderPartRow(pdf *fpdf.Fpdf, tf typeface, p report.EnrichedPart, y float64, shaded bool) {
	if shaded {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	pdf.SetFont(tf.family, "", 9)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)

	code := p.EdgeCode
	if code == "" {
		code = "-"
	}
	cells := []string{
		tf.partName(p),
		report.FormatCM(p.Width),
		report.FormatCM(p.Height),
		fmt.Sprintf("%d", p.Pieces),
		tf.text(code),
		"",
		tf.text(p.Description),
	}

	x := marginLeft
	for i, col := range partColumns {
		pdf.SetXY(x, y)
		pdf.CellFormat(col.width, rowHeight, cells[i], "1", 0, col.align, true, 0, "")
		if i == 5 {
			drawEdgeDiagram(pdf, tf, p.Marks, x+(col.width-12)/2, y+1.5, 12, rowHeight-3)
		}
		x += col.width
	}
}

// drawEdgeDiagram draws a small panel with taped edges as thick solid
// lines and grooved edges as dashed lines.
func drawEdgeDiagram(pdf *fpdf.Fpdf, tf typeface, m model.EdgeMarks, x, y, w, h float64) {
	edges := []struct {
		mark           model.Mark
		x1, y1, x2, y2 float64
	}{
		{m.Top, x, y, x + w, y},
		{m.Bottom, x, y + h, x + w, y + h},
		{m.Left, x, y, x, y + h},
		{m.Right, x + w, y, x + w, y + h},
	}
	for _, e := range edges {
		switch e.mark {
		case model.MarkTape:
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetLineWidth(0.7)
		case model.MarkGroove:
			pdf.SetDrawColor(0, 70, 170)
			pdf.SetLineWidth(0.4)
			pdf.SetDashPattern([]float64{0.8, 0.6}, 0)
		default:
			pdf.SetDrawColor(170, 170, 170)
			pdf.SetLineWidth(0.1)
		}
		pdf.Line(e.x1, e.y1, e.x2, e.y2)
		pdf.SetDashPattern([]float64{}, 0)
	}

	// Groove glyph next to the right edge so grooves survive black and white printing.
	if m.Count(model.MarkGroove) > 0 {
		pdf.SetFont(tf.family, "B", 6)
		pdf.SetTextColor(0, 70, 170)
		pdf.SetXY(x+w+0.5, y)
		pdf.CellFormat(3, h, tf.glyph(model.MarkGroove), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
}

// renderBandingPage draws the edge banding totals.
func renderBandingPage(pdf *fpdf.Fpdf, tf typeface, list report.CutList, s report.BandingSummary, at time.Time) {
	y := renderPageHeader(pdf, tf, list, "Edge banding", at)

	items := []struct {
		label string
		value string
	}{
		{"Tape length", s.TapeLengthM.StringFixed(2) + " m"},
		{fmt.Sprintf("Tape incl. %.0f%% waste", s.WastePercent), s.TapeWithWasteM.StringFixed(2) + " m"},
		{"Groove length", s.GrooveLengthM.StringFixed(2) + " m"},
		{"Pieces with banding", fmt.Sprintf("%d", s.PieceCount)},
		{"Taped edges", fmt.Sprintf("%d", s.TapedEdgeCount)},
		{"Grooved edges", fmt.Sprintf("%d", s.GroovedEdgeCount)},
	}

	pdf.SetFont(tf.family, "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont(tf.family, "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont(tf.family, "", 10)
		y += 7
	}

	if len(s.UnmatchedEdgeCodes) > 0 {
		y += 5
		pdf.SetFont(tf.family, "B", 10)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(150, 6, "WARNING: unknown edge codes (printed without marks)", "", 0, "L", false, 0, "")
		y += 7
		pdf.SetFont(tf.family, "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, code := range s.UnmatchedEdgeCodes {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(150, 5, "- "+tf.text(code), "", 0, "L", false, 0, "")
			y += 5
		}
	}
}

func tableWidth() float64 {
	total := 0.0
	for _, col := range partColumns {
		total += col.width
	}
	return total
}

// latinOnly replaces characters the core fonts cannot encode.
func latinOnly(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r > 0x7E {
			out = append(out, '?')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}
