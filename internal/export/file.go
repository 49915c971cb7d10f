package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// writeFile creates path (and missing parent directories) and streams the
// output of render into it. A partially written file is removed on error.
func writeFile(path string, render func(w io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
