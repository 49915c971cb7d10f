package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piwi3910/cutprint/internal/report"
)

// WriteJSON encodes the cut list the way the HTTP API serves it.
func WriteJSON(w io.Writer, list report.CutList) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode cut list: %w", err)
	}
	return nil
}

// ExportJSON writes the cut list JSON to path.
func ExportJSON(path string, list report.CutList) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteJSON(w, list)
	})
}
