// Package project persists projects and application configuration on disk.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/cutprint/internal/model"
)

// SaveProject writes a project to path as indented JSON and stamps its
// UpdatedAt. Missing parent directories are created.
func SaveProject(path string, p model.Project) error {
	p.UpdatedAt = time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = p.UpdatedAt
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// LoadProject reads a project JSON file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	return DecodeProject(data)
}

// DecodeProject parses project JSON as produced by the unit calculation
// backend. Nil unit and part lists are normalized to empty slices.
func DecodeProject(data []byte) (model.Project, error) {
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("parse project: %w", err)
	}
	if p.Units == nil {
		p.Units = []model.Unit{}
	}
	for i := range p.Units {
		if p.Units[i].Parts == nil {
			p.Units[i].Parts = []model.Part{}
		}
	}
	return p, nil
}
