package source

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPostgres(t *testing.T) *Postgres {
	t.Helper()
	url := os.Getenv("CUTPRINT_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CUTPRINT_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pg, err := NewPostgres(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pg.Close)
	require.NoError(t, pg.EnsureSchema(ctx))
	return pg
}

func TestPostgres_SaveAndLoad(t *testing.T) {
	pg := testPostgres(t)
	ctx := context.Background()

	two := 2
	want := model.Project{
		ID:         "pg-test-1",
		Name:       "Kitchen",
		ClientName: "Villa 12",
		Units: []model.Unit{
			{ID: "pg-test-1-a", Type: "base_cabinet", Width: 60, Height: 72, Depth: 56, Parts: []model.Part{
				{ID: "pg-test-1-a-1", Name: "side_panel", Width: 72, Height: 56, Qty: &two, EdgeCode: "LM-يمين"},
				{ID: "pg-test-1-a-2", Name: "door", Width: 59.6, Height: 71.6, EdgeCode: "O", Description: "soft close"},
			}},
			{ID: "pg-test-1-b", Type: "filler", Width: 5, Parts: []model.Part{}},
		},
	}
	require.NoError(t, pg.SaveProject(ctx, want))

	got, err := pg.Project(ctx, "pg-test-1")
	require.NoError(t, err)
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(model.Project{}, "CreatedAt", "UpdatedAt")); diff != "" {
		t.Errorf("project mismatch (-want +got):\n%s", diff)
	}
}

func TestPostgres_NotFound(t *testing.T) {
	pg := testPostgres(t)
	_, err := pg.Project(context.Background(), "pg-test-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgres_ProjectsShareUnitKeys(t *testing.T) {
	pg := testPostgres(t)
	ctx := context.Background()

	imported := func(id, name string, width float64) model.Project {
		return model.Project{ID: id, Name: name, Units: []model.Unit{
			{ID: "1", Type: "custom", Width: width, Parts: []model.Part{
				{Name: "shelf", Width: width - 3.6, Height: 50, EdgeCode: "I"},
			}},
		}}
	}
	require.NoError(t, pg.SaveProject(ctx, imported("pg-test-a", "A", 60)))
	require.NoError(t, pg.SaveProject(ctx, imported("pg-test-b", "B", 80)))
	// Reseeding replaces the tree instead of colliding with itself.
	require.NoError(t, pg.SaveProject(ctx, imported("pg-test-a", "A", 60)))

	a, err := pg.Project(ctx, "pg-test-a")
	require.NoError(t, err)
	b, err := pg.Project(ctx, "pg-test-b")
	require.NoError(t, err)

	require.Len(t, a.Units, 1)
	require.Len(t, b.Units, 1)
	assert.Equal(t, 60.0, a.Units[0].Width)
	assert.Equal(t, 80.0, b.Units[0].Width)
	require.Len(t, a.Units[0].Parts, 1)
	require.Len(t, b.Units[0].Parts, 1)
	assert.Equal(t, "p0", a.Units[0].Parts[0].ID)
	assert.InDelta(t, 76.4, b.Units[0].Parts[0].Width, 1e-9)
}
