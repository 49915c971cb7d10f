package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	ProjectID   string  `json:"project"`
	UnitLabel   string  `json:"unit"`
	UnitType    string  `json:"unit_type"`
	UnitWidth   float64 `json:"unit_width_cm"`
	PartName    string  `json:"part"`
	DisplayName string  `json:"display_name"`
	Width       float64 `json:"width_cm"`
	Height      float64 `json:"height_cm"`
	EdgeCode    string  `json:"edge_code,omitempty"`
	Edges       string  `json:"edges"`
	Piece       int     `json:"piece"`
	Of          int     `json:"of"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos expands the cut list into one label per physical piece,
// in print order.
func CollectLabelInfos(list report.CutList) []LabelInfo {
	var infos []LabelInfo
	for _, s := range list.Sections() {
		for _, g := range s.Groups {
			for _, p := range g.Parts {
				for i := 1; i <= p.Pieces; i++ {
					infos = append(infos, LabelInfo{
						ProjectID:   list.ProjectID,
						UnitLabel:   g.UnitLabel,
						UnitType:    g.UnitType,
						UnitWidth:   g.UnitWidth,
						PartName:    p.Name,
						DisplayName: p.DisplayName,
						Width:       p.Width,
						Height:      p.Height,
						EdgeCode:    p.EdgeCode,
						Edges:       p.Marks.String(),
						Piece:       i,
						Of:          p.Pieces,
					})
				}
			}
		}
	}
	return infos
}

// WriteLabels renders QR-coded piece labels on Avery 5160 sheets (3 columns
// x 10 rows on US Letter). Each label shows the part, its dimensions and
// edge treatment; the QR code carries the same data as JSON.
func WriteLabels(w io.Writer, list report.CutList, opts Options) error {
	labels := CollectLabelInfos(list)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces to generate labels for")
	}

	pdf, tf, err := newDocument("P", "Letter", opts)
	if err != nil {
		return err
	}
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tf, x, y, i, label); err != nil {
			return fmt.Errorf("render label for %q: %w", label.PartName, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write labels pdf: %w", err)
	}
	return nil
}

// ExportLabels writes the label sheet PDF to path.
func ExportLabels(path string, list report.CutList, opts Options) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteLabels(w, list, opts)
	})
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tf typeface, x, y float64, index int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", index)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	name := tf.partName(report.EnrichedPart{Part: model.Part{Name: info.PartName}, DisplayName: info.DisplayName})
	unit := tf.unitHeading(report.UnitGroup{UnitType: info.UnitType, UnitWidth: info.UnitWidth, UnitLabel: info.UnitLabel})

	pdf.SetFont(tf.family, "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fitText(pdf, name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont(tf.family, "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s x %s cm", report.FormatCM(info.Width), report.FormatCM(info.Height))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+8.5)
	edges := "Edges: " + info.Edges
	if info.EdgeCode != "" {
		edges = fmt.Sprintf("Edges: %s [%s]", info.Edges, tf.text(info.EdgeCode))
	}
	pdf.CellFormat(textW, 3.5, fitText(pdf, edges, textW), "", 1, "L", false, 0, "")

	pdf.SetFont(tf.family, "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, fitText(pdf, unit, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+16)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Piece %d / %d", info.Piece, info.Of), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// fitText truncates s with an ellipsis so it fits within width.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
