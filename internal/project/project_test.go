package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects", "kitchen.json")

	p := model.NewProject("Kitchen")
	p.ClientName = "Villa 12"
	u := model.NewUnit("base_cabinet", 60, 72, 56)
	u.Parts = append(u.Parts, model.NewPart("side_panel", 72, 56, 2))
	u.Parts[0].EdgeCode = "LM-يمين"
	p.Units = append(p.Units, u)

	require.NoError(t, SaveProject(path, p))

	loaded, err := LoadProject(path)
	require.NoError(t, err)
	assert.False(t, loaded.UpdatedAt.Before(p.UpdatedAt))
	if diff := cmp.Diff(p, loaded, cmpopts.IgnoreFields(model.Project{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("project changed on round trip (-saved +loaded):\n%s", diff)
	}
}

func TestLoadProject_MissingFile(t *testing.T) {
	_, err := LoadProject(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestDecodeProject_BackendShape(t *testing.T) {
	data := []byte(`{
		"id": "42",
		"name": "Kitchen",
		"units": [
			{"type": "sink_cabinet", "width": 80, "parts": [
				{"name": "door", "width": 39.6, "height": 71.6, "qty": 2, "edge_code": "O"},
				{"name": "shelf", "width": 76.4, "height": 50, "quantity": 1}
			]},
			{"type": "filler"}
		]
	}`)

	p, err := DecodeProject(data)
	require.NoError(t, err)
	require.Len(t, p.Units, 2)
	assert.Equal(t, 2, p.Units[0].Parts[0].DisplayQuantity())
	assert.Equal(t, 1, p.Units[0].Parts[1].DisplayQuantity())
	assert.NotNil(t, p.Units[1].Parts)
}

func TestDecodeProject_InvalidJSON(t *testing.T) {
	_, err := DecodeProject([]byte("{not json"))
	assert.Error(t, err)
}
