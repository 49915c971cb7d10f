package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/xuri/excelize/v2"
)

var xlsxHeaders = []interface{}{
	"Part", "Width (cm)", "Height (cm)", "Qty", "Top", "Bottom", "Left", "Right", "Edge code", "Notes",
}

// Sheet names per section. Excel limits names to 31 characters.
var xlsxSheetNames = map[model.PartCategory]string{
	model.CategoryMain:      "Main parts",
	model.CategoryBackPanel: "Back panels",
	model.CategoryDoorFront: "Doors",
}

// WriteXLSX renders the cut list as an Excel workbook with one right-to-left
// sheet per section. Sections without parts still get an empty sheet so the
// workbook layout is stable.
func WriteXLSX(w io.Writer, list report.CutList) error {
	if len(list.Parts()) == 0 {
		return fmt.Errorf("no parts to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	groupStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D2E1F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create group style: %w", err)
	}

	rtl := true
	for i, section := range list.Sections() {
		name := xlsxSheetNames[section.Category]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		if err := f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return fmt.Errorf("set sheet view: %w", err)
		}
		if err := f.SetColWidth(name, "A", "A", 24); err != nil {
			return err
		}
		if err := f.SetColWidth(name, "J", "J", 30); err != nil {
			return err
		}

		if err := f.SetSheetRow(name, "A1", &xlsxHeaders); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(name, "A1", "J1", headerStyle); err != nil {
			return err
		}

		row := 2
		for _, g := range section.Groups {
			cell := fmt.Sprintf("A%d", row)
			if err := f.SetCellValue(name, cell, g.UnitLabel); err != nil {
				return err
			}
			if err := f.MergeCell(name, cell, fmt.Sprintf("J%d", row)); err != nil {
				return err
			}
			if err := f.SetCellStyle(name, cell, fmt.Sprintf("J%d", row), groupStyle); err != nil {
				return err
			}
			row++

			for _, p := range g.Parts {
				values := xlsxPartRow(p)
				if err := f.SetSheetRow(name, fmt.Sprintf("A%d", row), &values); err != nil {
					return fmt.Errorf("write row %d of %s: %w", row, name, err)
				}
				row++
			}
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// ExportXLSX writes the cut list workbook to path.
func ExportXLSX(path string, list report.CutList) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteXLSX(w, list)
	})
}

func xlsxPartRow(p report.EnrichedPart) []interface{} {
	code := p.EdgeCode
	if code == "" {
		code = "-"
	}
	return []interface{}{
		p.DisplayName,
		p.Width,
		p.Height,
		p.Pieces,
		p.Marks.Top.Glyph(),
		p.Marks.Bottom.Glyph(),
		p.Marks.Left.Glyph(),
		p.Marks.Right.Glyph(),
		code,
		p.Description,
	}
}
