// Package importer reads cut lists exported from spreadsheets into a
// project. CSV (with delimiter detection) and Excel files are supported;
// columns are mapped by case-insensitive header aliases.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/cutprint/internal/edgemarks"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Rows with errors
// are skipped; the project holds every row that parsed.
type ImportResult struct {
	Project  model.Project
	Errors   []string
	Warnings []string
}

// PartCount returns the number of part rows imported.
func (r ImportResult) PartCount() int {
	n := 0
	for _, u := range r.Project.Units {
		n += len(u.Parts)
	}
	return n
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Unit        int
	UnitType    int
	UnitWidth   int
	Name        int
	Width       int
	Height      int
	Quantity    int
	EdgeCode    int
	Description int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"unit":        {"unit", "unit id", "unit_id", "cabinet", "module"},
	"unit_type":   {"unit_type", "unit type", "type", "cabinet type"},
	"unit_width":  {"unit_width", "unit width", "cabinet width"},
	"name":        {"name", "part", "part name", "part_name", "label", "piece", "item"},
	"width":       {"width", "w", "length", "len", "x"},
	"height":      {"height", "h", "y"},
	"quantity":    {"quantity", "qty", "count", "pcs", "pieces"},
	"edge_code":   {"edge_code", "edge code", "edge", "edges", "banding", "tape"},
	"description": {"description", "desc", "notes", "note", "comment"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (name, width, height, quantity, edge code) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	roles := map[string]int{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, taken := roles[role]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					roles[role] = i
					break
				}
			}
		}
	}

	if len(roles) == 0 {
		return ColumnMapping{
			Unit:        -1,
			UnitType:    -1,
			UnitWidth:   -1,
			Name:        0,
			Width:       1,
			Height:      2,
			Quantity:    3,
			EdgeCode:    4,
			Description: 5,
		}, false
	}

	index := func(role string) int {
		if i, ok := roles[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		Unit:        index("unit"),
		UnitType:    index("unit_type"),
		UnitWidth:   index("unit_width"),
		Name:        index("name"),
		Width:       index("width"),
		Height:      index("height"),
		Quantity:    index("quantity"),
		EdgeCode:    index("edge_code"),
		Description: index("description"),
	}, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Part from a row using the given column mapping.
// Returns the part, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Part, string, []string) {
	var warnings []string

	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("part_%d", partCount+1)
		warnings = append(warnings, fmt.Sprintf("%s: Missing part name, using '%s'", rowLabel, name))
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Part{}, fmt.Sprintf("%s: Missing height value", rowLabel), nil
	}
	height, err := strconv.ParseFloat(heightStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
	}

	if !positiveFinite(width) || !positiveFinite(height) {
		return model.Part{}, fmt.Sprintf("%s: Width and height must be positive numbers", rowLabel), nil
	}

	var part model.Part
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.Part{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if qty <= 0 {
			return model.Part{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
		part = model.NewPart(name, width, height, qty)
	} else {
		part = model.NewPart(name, width, height, 0)
		part.Quantity = nil
	}

	part.EdgeCode = getCell(row, mapping.EdgeCode)
	part.Description = getCell(row, mapping.Description)
	if !edgemarks.Recognized(part.EdgeCode) {
		warnings = append(warnings, fmt.Sprintf("%s: Unknown edge code '%s', printed without marks", rowLabel, part.EdgeCode))
	}

	return part, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a project from a CSV file. The project is named after
// the file.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, projectName(path), "Line", result.Warnings)
}

// ImportCSVFromReader imports a project from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, name string) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, name, "Line", nil)
}

// ImportExcel imports a project from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, projectName(path), "Row", nil)
}

// ImportFile dispatches on the file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return ImportExcel(path)
	default:
		return ImportCSV(path)
	}
}

func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// importFromRows is the shared import logic for both CSV and Excel data.
// Rows are grouped into units by the unit column in order of first
// appearance; without a unit column every part lands in a single unit.
func importFromRows(rows [][]string, name, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Project:  model.NewProject(name),
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognized header: skip it but keep the positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Unrecognized header row, using column positions")
		}
	}

	unitIndex := map[string]int{}
	parts := 0
	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, errMsg, warnings := parseRow(row, mapping, rowLabel, parts)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		key := getCell(row, mapping.Unit)
		idx, ok := unitIndex[key]
		if !ok {
			u, warning := newUnit(row, mapping, key, rowLabel)
			if warning != "" {
				result.Warnings = append(result.Warnings, warning)
			}
			result.Project.Units = append(result.Project.Units, u)
			idx = len(result.Project.Units) - 1
			unitIndex[key] = idx
		}
		result.Project.Units[idx].Parts = append(result.Project.Units[idx].Parts, part)
		parts++
	}

	if parts == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}
	return result
}

// newUnit builds the unit a row's key refers to from that first row.
// positiveFinite rejects zero, negatives, NaN and infinities.
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func newUnit(row []string, mapping ColumnMapping, key, rowLabel string) (model.Unit, string) {
	unitType := getCell(row, mapping.UnitType)
	if unitType == "" {
		unitType = "custom"
	}

	var width float64
	var warning string
	if s := getCell(row, mapping.UnitWidth); s != "" {
		w, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			warning = fmt.Sprintf("%s: Invalid unit width '%s', using 0", rowLabel, s)
		} else {
			width = w
		}
	}

	u := model.NewUnit(unitType, width, 0, 0)
	if key != "" {
		u.ID = key
	}
	return u, warning
}
