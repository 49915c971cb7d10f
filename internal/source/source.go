// Package source loads projects by ID from the configured backend: a
// directory of JSON files, the unit calculation HTTP API or PostgreSQL.
package source

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/piwi3910/cutprint/internal/model"
)

// ErrNotFound is returned when a project ID is unknown to the source.
var ErrNotFound = errors.New("project not found")

// ErrInvalidID is returned for IDs outside [A-Za-z0-9_-].
var ErrInvalidID = errors.New("invalid project id")

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Source resolves a project ID to its project tree.
type Source interface {
	Project(ctx context.Context, id string) (model.Project, error)
	// Kind names the backend for logs and metrics.
	Kind() string
}

// Closer is implemented by sources holding connections.
type Closer interface {
	Close()
}

// ValidateID rejects IDs that are not safe to use as file names or URL segments.
func ValidateID(id string) error {
	if !validID.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// New builds the source selected by cfg.Kind.
func New(ctx context.Context, cfg model.SourceConfig) (Source, error) {
	switch cfg.Kind {
	case model.SourceFile, "":
		return NewFile(cfg.ProjectsDir), nil
	case model.SourceHTTP:
		return NewHTTP(cfg.BackendURL, cfg.BackendToken, cfg.BackendTimeout)
	case model.SourcePostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
