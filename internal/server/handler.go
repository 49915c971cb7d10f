package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/piwi3910/cutprint/internal/edgemarks"
	"github.com/piwi3910/cutprint/internal/export"
	"github.com/piwi3910/cutprint/internal/labels"
	"github.com/piwi3910/cutprint/internal/metrics"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/project"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/piwi3910/cutprint/internal/source"
	"go.uber.org/zap"
)

// Handler serves the cut list API.
type Handler struct {
	src      source.Source
	printCfg model.PrintConfig
	log      *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(src source.Source, printCfg model.PrintConfig, log *zap.Logger) *Handler {
	return &Handler{src: src, printCfg: printCfg, log: log}
}

// RegisterRoutes registers the API endpoints on the given Chi router.
// Expected to be mounted under /api.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/edge-marks", h.EdgeMarks)
	r.Get("/dictionaries/{name}", h.Dictionary)
	r.Post("/cutlist", h.CutList)

	r.Route("/projects/{id}", func(r chi.Router) {
		r.Get("/cutlist", h.ProjectCutList)
		r.Get("/cutlist.pdf", h.ProjectPDF)
		r.Get("/cutlist.xlsx", h.ProjectXLSX)
		r.Get("/labels.pdf", h.ProjectLabels)
		r.Get("/banding", h.ProjectBanding)
	})
}

// --- Response types ---

type edgeMarksResponse struct {
	Code       string          `json:"code"`
	Rule       string          `json:"rule"`
	Recognized bool            `json:"recognized"`
	Marks      model.EdgeMarks `json:"marks"`
	Glyphs     glyphs          `json:"glyphs"`
	Summary    string          `json:"summary"`
}

type glyphs struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

type dictionaryResponse struct {
	Name    string            `json:"name"`
	Entries map[string]string `json:"entries"`
}

// --- Handlers ---

// EdgeMarks resolves ?code= and explains which rule matched.
func (h *Handler) EdgeMarks(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	rule, marks := edgemarks.Explain(code)
	writeJSON(w, http.StatusOK, edgeMarksResponse{
		Code:       code,
		Rule:       rule,
		Recognized: edgemarks.Recognized(code),
		Marks:      marks,
		Glyphs: glyphs{
			Top:    marks.Top.Glyph(),
			Bottom: marks.Bottom.Glyph(),
			Left:   marks.Left.Glyph(),
			Right:  marks.Right.Glyph(),
		},
		Summary: marks.String(),
	})
}

// Dictionary returns one of the built-in label dictionaries.
func (h *Handler) Dictionary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, ok := labels.ByName(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dictionary %q", name))
		return
	}
	writeJSON(w, http.StatusOK, dictionaryResponse{Name: d.Name(), Entries: d.Entries()})
}

// CutList aggregates a project posted as JSON.
func (h *Handler) CutList(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "cannot read request body")
		return
	}
	p, err := project.DecodeProject(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid project JSON")
		return
	}

	list := report.Aggregate(p)
	h.record("json", list)
	writeJSON(w, http.StatusOK, list)
}

// ProjectCutList loads a project from the source and returns its cut list.
func (h *Handler) ProjectCutList(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadCutList(w, r)
	if !ok {
		return
	}
	h.record("json", list)
	writeJSON(w, http.StatusOK, list)
}

// ProjectPDF renders the project's cut list PDF with a banding summary page.
func (h *Handler) ProjectPDF(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadCutList(w, r)
	if !ok {
		return
	}
	summary := report.CalculateBanding(list, h.printCfg.WastePercent)
	opts := export.Options{FontPath: h.printCfg.FontPath, GeneratedAt: time.Now(), Banding: &summary}
	h.render(w, r, "pdf", list, "application/pdf", list.ProjectID+"-cutlist.pdf", func(w io.Writer) error {
		return export.WritePDF(w, list, opts)
	})
}

// ProjectXLSX renders the project's cut list workbook.
func (h *Handler) ProjectXLSX(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadCutList(w, r)
	if !ok {
		return
	}
	h.render(w, r, "xlsx", list,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		list.ProjectID+"-cutlist.xlsx", func(w io.Writer) error {
			return export.WriteXLSX(w, list)
		})
}

// ProjectLabels renders one QR label per piece.
func (h *Handler) ProjectLabels(w http.ResponseWriter, r *http.Request) {
	list, ok := h.loadCutList(w, r)
	if !ok {
		return
	}
	opts := export.Options{FontPath: h.printCfg.FontPath}
	h.render(w, r, "labels", list, "application/pdf", list.ProjectID+"-labels.pdf", func(w io.Writer) error {
		return export.WriteLabels(w, list, opts)
	})
}

// ProjectBanding returns edge banding totals. ?waste= overrides the
// configured waste percentage.
func (h *Handler) ProjectBanding(w http.ResponseWriter, r *http.Request) {
	waste := h.printCfg.WastePercent
	if s := r.URL.Query().Get("waste"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || !model.ValidWastePercent(v) {
			writeError(w, http.StatusBadRequest, "waste must be a percentage between 0 and 100")
			return
		}
		waste = v
	}

	list, ok := h.loadCutList(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, report.CalculateBanding(list, waste))
}

// --- Helpers ---

// loadCutList fetches the {id} project and aggregates it. On failure it
// writes the error response and returns false.
func (h *Handler) loadCutList(w http.ResponseWriter, r *http.Request) (report.CutList, bool) {
	id := chi.URLParam(r, "id")
	p, err := h.loadProject(r.Context(), id)
	switch {
	case err == nil:
		return report.Aggregate(p), true
	case errors.Is(err, source.ErrNotFound):
		writeError(w, http.StatusNotFound, "project not found")
	case errors.Is(err, source.ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid project id")
	case errors.Is(err, context.Canceled):
		// client went away
	default:
		h.log.Error("load project",
			zap.String("project_id", id),
			zap.String("source", h.src.Kind()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusBadGateway, "project source unavailable")
	}
	return report.CutList{}, false
}

func (h *Handler) loadProject(ctx context.Context, id string) (model.Project, error) {
	timer := metrics.NewTimer()
	p, err := h.src.Project(ctx, id)
	metrics.RecordSourceLoad(h.src.Kind(), err, timer.Duration())
	return p, err
}

// render buffers a document so a rendering error can still be answered
// with a JSON error.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, format string, list report.CutList, contentType, filename string, write func(io.Writer) error) {
	if len(list.Parts()) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "project has no parts")
		return
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		h.log.Error("render",
			zap.String("format", format),
			zap.String("project_id", list.ProjectID),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "failed to render "+format)
		return
	}

	h.record(format, list)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

func (h *Handler) record(format string, list report.CutList) {
	unmatched := 0
	for _, p := range list.Parts() {
		if !edgemarks.Recognized(p.EdgeCode) {
			unmatched++
		}
	}
	metrics.RecordCutList(format, list, unmatched)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode JSON response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
