// Package metrics provides Prometheus metrics for the print service
package metrics

import (
	"errors"
	"time"

	"github.com/piwi3910/cutprint/internal/report"
	"github.com/piwi3910/cutprint/internal/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Output metrics
	CutListsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cutprint_cutlists_total",
			Help: "Total number of cut lists rendered",
		},
		[]string{"format"},
	)

	PartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cutprint_parts_total",
			Help: "Total number of part rows aggregated, by print section",
		},
		[]string{"category"},
	)

	UnmatchedEdgeCodes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cutprint_unmatched_edge_codes_total",
			Help: "Total number of edge codes no resolver rule matched",
		},
	)

	// Source metrics
	SourceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cutprint_source_errors_total",
			Help: "Total number of failed project loads",
		},
		[]string{"source", "kind"},
	)

	SourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cutprint_source_duration_seconds",
			Help:    "Time taken to load a project from its source",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cutprint_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)

// RecordCutList records a rendered cut list.
func RecordCutList(format string, list report.CutList, unmatched int) {
	CutListsTotal.WithLabelValues(format).Inc()
	for _, s := range list.Sections() {
		n := 0
		for _, g := range s.Groups {
			n += len(g.Parts)
		}
		if n > 0 {
			PartsTotal.WithLabelValues(s.Category.String()).Add(float64(n))
		}
	}
	if unmatched > 0 {
		UnmatchedEdgeCodes.Add(float64(unmatched))
	}
}

// RecordSourceLoad records a project load and classifies its error.
func RecordSourceLoad(sourceKind string, err error, duration time.Duration) {
	SourceDuration.WithLabelValues(sourceKind).Observe(duration.Seconds())
	if err != nil {
		SourceErrorsTotal.WithLabelValues(sourceKind, ErrorKind(err)).Inc()
	}
}

// ErrorKind maps a source error to a low-cardinality label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, source.ErrNotFound):
		return "not_found"
	case errors.Is(err, source.ErrInvalidID):
		return "invalid_id"
	default:
		return "backend"
	}
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
