package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names. Each panel edge is drawn on the layer of its treatment.
const (
	LayerPanel  = "PANEL"
	LayerTape   = "TAPE"
	LayerGroove = "GROOVE"
)

// DXF grid layout in mm.
const (
	dxfSpacing  = 50.0
	dxfRowLimit = 3000.0
	dxfTextSize = 20.0
)

// ExportDXF draws every physical piece of the cut list as a rectangle in a
// grid (dimensions converted from cm to mm). Untreated edges go on PANEL,
// taped edges on TAPE and grooved edges on GROOVE; the part name is written
// inside the rectangle.
func ExportDXF(path string, list report.CutList) error {
	parts := list.Parts()
	if len(parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	d := dxf.NewDrawing()
	for _, l := range []struct {
		name  string
		color color.ColorNumber
	}{
		{LayerPanel, color.White},
		{LayerTape, color.Red},
		{LayerGroove, color.Blue},
	} {
		if _, err := d.AddLayer(l.name, l.color, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("add layer %s: %w", l.name, err)
		}
	}

	x, y, rowHeight := 0.0, 0.0, 0.0
	for _, p := range parts {
		w, h := p.Width*10, p.Height*10
		for i := 0; i < p.Pieces; i++ {
			if x > 0 && x+w > dxfRowLimit {
				x = 0
				y += rowHeight + dxfSpacing
				rowHeight = 0
			}
			if err := drawPiece(d, p, x, y, w, h); err != nil {
				return fmt.Errorf("draw %s: %w", p.Name, err)
			}
			x += w + dxfSpacing
			if h > rowHeight {
				rowHeight = h
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("write dxf: %w", err)
	}
	return nil
}

// drawPiece draws one rectangle with its lower left corner at (x, y).
// DXF's y axis points up, so the top edge is at y+h.
func drawPiece(d *drawing.Drawing, p report.EnrichedPart, x, y, w, h float64) error {
	edges := []struct {
		mark           model.Mark
		x1, y1, x2, y2 float64
	}{
		{p.Marks.Top, x, y + h, x + w, y + h},
		{p.Marks.Bottom, x, y, x + w, y},
		{p.Marks.Left, x, y, x, y + h},
		{p.Marks.Right, x + w, y, x + w, y + h},
	}
	for _, e := range edges {
		if err := d.ChangeLayer(layerFor(e.mark)); err != nil {
			return err
		}
		if _, err := d.Line(e.x1, e.y1, 0, e.x2, e.y2, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(LayerPanel); err != nil {
		return err
	}
	label := fmt.Sprintf("%s %sx%s", p.Name, report.FormatCM(p.Width), report.FormatCM(p.Height))
	_, err := d.Text(label, x+dxfTextSize/2, y+h/2, 0, dxfTextSize)
	return err
}

func layerFor(m model.Mark) string {
	switch m {
	case model.MarkTape:
		return LayerTape
	case model.MarkGroove:
		return LayerGroove
	default:
		return LayerPanel
	}
}
