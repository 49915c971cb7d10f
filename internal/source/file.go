package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/project"
)

// File reads projects from <dir>/<id>.json.
type File struct {
	dir string
}

// NewFile creates a File source rooted at dir.
func NewFile(dir string) *File {
	return &File{dir: dir}
}

func (f *File) Kind() string { return model.SourceFile }

// Path returns the file a project ID maps to.
func (f *File) Path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

// Project implements Source.
func (f *File) Project(ctx context.Context, id string) (model.Project, error) {
	if err := ValidateID(id); err != nil {
		return model.Project{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Project{}, err
	}
	p, err := project.LoadProject(f.Path(id))
	if errors.Is(err, os.ErrNotExist) {
		return model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("load project %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
