package labels

import (
	"strings"

	"github.com/piwi3910/cutprint/internal/model"
)

// Classify buckets a part by its name. Door and front parts win over
// back panels; anything else is a main carcass part.
func Classify(partName string) model.PartCategory {
	name := strings.ToLower(partName)
	switch {
	case strings.Contains(name, "door"), strings.Contains(name, "front"):
		return model.CategoryDoorFront
	case strings.Contains(name, "back_panel"):
		return model.CategoryBackPanel
	default:
		return model.CategoryMain
	}
}
