package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
	"github.com/piwi3910/cutprint/internal/source"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCutList(t *testing.T) {
	p := model.Project{Units: []model.Unit{{Type: "base_cabinet", Width: 60, Parts: []model.Part{
		{Name: "door", Width: 60, Height: 70, EdgeCode: "O"},
		{Name: "shelf", Width: 56, Height: 50, EdgeCode: "I"},
		{Name: "shelf", Width: 56, Height: 50, EdgeCode: "I"},
	}}}}
	list := report.Aggregate(p)

	before := testutil.ToFloat64(CutListsTotal.WithLabelValues("pdf"))
	mainBefore := testutil.ToFloat64(PartsTotal.WithLabelValues("MAIN"))
	unmatchedBefore := testutil.ToFloat64(UnmatchedEdgeCodes)

	RecordCutList("pdf", list, 2)

	assert.Equal(t, before+1, testutil.ToFloat64(CutListsTotal.WithLabelValues("pdf")))
	assert.Equal(t, mainBefore+2, testutil.ToFloat64(PartsTotal.WithLabelValues("MAIN")))
	assert.Equal(t, unmatchedBefore+2, testutil.ToFloat64(UnmatchedEdgeCodes))
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "not_found", ErrorKind(fmt.Errorf("%w: 7", source.ErrNotFound)))
	assert.Equal(t, "invalid_id", ErrorKind(source.ValidateID("../x")))
	assert.Equal(t, "backend", ErrorKind(errors.New("connection refused")))
}

func TestRecordSourceLoad(t *testing.T) {
	before := testutil.ToFloat64(SourceErrorsTotal.WithLabelValues("file", "not_found"))
	RecordSourceLoad("file", source.ErrNotFound, time.Millisecond)
	RecordSourceLoad("file", nil, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(SourceErrorsTotal.WithLabelValues("file", "not_found")))
}
