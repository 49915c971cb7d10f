package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/piwi3910/cutprint/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// --- Stub source ---

type stubSource struct {
	projects map[string]model.Project
	err      error
}

func (s *stubSource) Kind() string { return "stub" }

func (s *stubSource) Project(_ context.Context, id string) (model.Project, error) {
	if err := source.ValidateID(id); err != nil {
		return model.Project{}, err
	}
	if s.err != nil {
		return model.Project{}, s.err
	}
	p, ok := s.projects[id]
	if !ok {
		return model.Project{}, source.ErrNotFound
	}
	return p, nil
}

func intPtr(v int) *int { return &v }

func kitchen() model.Project {
	return model.Project{
		ID:   "k1",
		Name: "Kitchen",
		Units: []model.Unit{
			{ID: "a", Type: "base_cabinet", Width: 60, Parts: []model.Part{
				{Name: "side_panel", Width: 72, Height: 56, Qty: intPtr(2), EdgeCode: "L"},
				{Name: "back_panel", Width: 59, Height: 71, EdgeCode: "-"},
				{Name: "door", Width: 59.6, Height: 71.6, EdgeCode: "O"},
			}},
		},
	}
}

func newTestServer(t *testing.T, src source.Source) (http.Handler, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	cfg := model.DefaultAppConfig()
	cfg.Server.MaxBodyBytes = 1 << 10
	return New(cfg, src, zap.New(core)).Router(), logs
}

func do(t *testing.T, h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// --- Tests ---

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	rr := do(t, h, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "stub", decode[map[string]string](t, rr)["source"])
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	do(t, h, "GET", "/health", nil)
	rr := do(t, h, "GET", "/metrics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "cutprint_http_request_duration_seconds")
}

func TestEdgeMarks(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	rr := do(t, h, "GET", "/api/edge-marks?code=LM-%D9%8A%D9%85%D9%8A%D9%86", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[edgeMarksResponse](t, rr)
	assert.Equal(t, "LM-يمين", resp.Code)
	assert.Equal(t, "LM-يمين", resp.Rule)
	assert.True(t, resp.Recognized)
	assert.Equal(t, model.EdgeMarks{Top: model.MarkTape, Left: model.MarkTape, Right: model.MarkGroove}, resp.Marks)
	assert.Equal(t, glyphs{Top: "—", Left: "—", Right: "م"}, resp.Glyphs)
}

func TestEdgeMarks_Unknown(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	resp := decode[edgeMarksResponse](t, do(t, h, "GET", "/api/edge-marks?code=ZZ", nil))
	assert.False(t, resp.Recognized)
	assert.Empty(t, resp.Rule)
	assert.Equal(t, "None", resp.Summary)
}

func TestDictionary(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})

	rr := do(t, h, "GET", "/api/dictionaries/unit-types", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dictionaryResponse](t, rr)
	assert.Equal(t, "unit-types", resp.Name)
	assert.Len(t, resp.Entries, 35)

	rr = do(t, h, "GET", "/api/dictionaries/colours", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPostCutList(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	body, err := json.Marshal(kitchen())
	require.NoError(t, err)

	rr := do(t, h, "POST", "/api/cutlist", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	list := decode[report.CutList](t, rr)
	assert.Len(t, list.MainRows, 1)
	assert.Len(t, list.BackRows, 1)
	assert.Len(t, list.DoorRows, 1)
	assert.Equal(t, 2, list.MainRows[0].Parts[0].Pieces)
}

func TestPostCutList_BadBodies(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})

	rr := do(t, h, "POST", "/api/cutlist", []byte("{nope"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	big := []byte(`{"name":"` + strings.Repeat("x", 2<<10) + `"}`)
	rr = do(t, h, "POST", "/api/cutlist", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestProjectCutList(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/k1/cutlist", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "k1", decode[report.CutList](t, rr).ProjectID)

	assert.Equal(t, http.StatusNotFound, do(t, h, "GET", "/api/projects/nope/cutlist", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/api/projects/bad.id/cutlist", nil).Code)
}

func TestProjectCutList_SourceFailureIsLogged(t *testing.T) {
	h, logs := newTestServer(t, &stubSource{err: errors.New("connection refused")})

	rr := do(t, h, "GET", "/api/projects/k1/cutlist", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")

	entries := logs.FilterMessage("load project").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "k1", entries[0].ContextMap()["project_id"])
}

func TestProjectPDF(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/k1/cutlist.pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "k1-cutlist.pdf")
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestProjectLabels(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/k1/labels.pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))
}

func TestProjectXLSX(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/k1/cutlist.xlsx", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Main parts", "Back panels", "Doors"}, f.GetSheetList())
}

func TestProjectPDF_EmptyProject(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"e": {ID: "e", Units: []model.Unit{}}}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/e/cutlist.pdf", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestProjectBanding(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	rr := do(t, h, "GET", "/api/projects/k1/banding?waste=0", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var summary struct {
		TapeLengthM  string  `json:"tape_length_m"`
		WastePercent float64 `json:"waste_percent"`
		PieceCount   int     `json:"piece_count"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &summary))
	assert.Equal(t, 0.0, summary.WastePercent)
	// side panels: 2 x (72 + 56), door: 2 x 59.6 + 2 x 71.6
	assert.Equal(t, "5.184", summary.TapeLengthM)
	assert.Equal(t, 3, summary.PieceCount)

	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/api/projects/k1/banding?waste=abc", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/api/projects/k1/banding?waste=-5", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, "GET", "/api/projects/k1/banding?waste=150", nil).Code)
}

func TestProjectBanding_NonFiniteWaste(t *testing.T) {
	src := &stubSource{projects: map[string]model.Project{"k1": kitchen()}}
	h, _ := newTestServer(t, src)

	for _, v := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		rr := do(t, h, "GET", "/api/projects/k1/banding?waste="+v, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "waste=%s", v)
	}
}

func TestRequestLogger(t *testing.T) {
	h, logs := newTestServer(t, &stubSource{})
	do(t, h, "GET", "/api/dictionaries/part-names", nil)

	entries := logs.FilterMessage("request").All()
	require.NotEmpty(t, entries)
	fields := entries[len(entries)-1].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/dictionaries/{name}", fields["route"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestCORS(t *testing.T) {
	h, _ := newTestServer(t, &stubSource{})
	req := httptest.NewRequest("OPTIONS", "/api/cutlist", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
