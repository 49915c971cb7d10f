package export

import (
	"github.com/piwi3910/cutprint/internal/model"
	"github.com/piwi3910/cutprint/internal/report"
)

func intPtr(v int) *int { return &v }

// buildTestProject creates a two-unit kitchen with parts in every section.
func buildTestProject() model.Project {
	return model.Project{
		ID:         "p1",
		Name:       "Kitchen",
		ClientName: "Test Client",
		Units: []model.Unit{
			{
				ID: "u1", Type: "base_cabinet", Width: 60, Height: 72, Depth: 56,
				Parts: []model.Part{
					{ID: "a", Name: "side_panel", Width: 72, Height: 56, Qty: intPtr(2), EdgeCode: "L"},
					{ID: "b", Name: "shelf", Width: 56.4, Height: 52, EdgeCode: "I"},
					{ID: "c", Name: "back_panel", Width: 59, Height: 71, EdgeCode: "-"},
					{ID: "d", Name: "door", Width: 59.6, Height: 71.6, EdgeCode: "O", Description: "soft close"},
				},
			},
			{
				ID: "u2", Type: "wall_cabinet", Width: 80, Height: 70, Depth: 32,
				Parts: []model.Part{
					{ID: "e", Name: "side_panel", Width: 70, Height: 32, Quantity: intPtr(2), EdgeCode: "LM-يمين"},
					{ID: "f", Name: "shelf", Width: 76.4, Height: 30, EdgeCode: "ZZ"},
				},
			},
		},
	}
}

func buildTestCutList() report.CutList {
	return report.Aggregate(buildTestProject())
}
