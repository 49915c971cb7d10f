package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/project"
)

// maxProjectBytes caps the backend response body.
const maxProjectBytes = 8 << 20

// HTTP fetches projects from the unit calculation backend at
// GET {base}/projects/{id}.
type HTTP struct {
	base   *url.URL
	token  string
	client *http.Client
}

// NewHTTP creates an HTTP source. token is sent as a bearer token when set.
func NewHTTP(baseURL, token string, timeout time.Duration) (*HTTP, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("backend url is required for the http source")
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must be http or https", baseURL)
	}
	return &HTTP{
		base:   base,
		token:  token,
		client: &http.Client{Timeout: timeout},
	}, nil
}

func (h *HTTP) Kind() string { return model.SourceHTTP }

// Project implements Source.
func (h *HTTP) Project(ctx context.Context, id string) (model.Project, error) {
	if err := ValidateID(id); err != nil {
		return model.Project{}, err
	}

	u := h.base.JoinPath("projects", id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.Project{}, err
	}
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return model.Project{}, fmt.Errorf("fetch project %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return model.Project{}, fmt.Errorf("fetch project %s: backend returned %s", id, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxProjectBytes))
	if err != nil {
		return model.Project{}, fmt.Errorf("read project %s: %w", id, err)
	}
	p, err := project.DecodeProject(data)
	if err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", id, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
