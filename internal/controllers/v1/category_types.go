package v1

import "github.com/appz-budget/backend/internal/models"

// CategoryEditable represents the fields of a category clients can set.
type CategoryEditable struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (e CategoryEditable) model() models.Category {
	return models.Category{
		Name:  e.Name,
		Color: e.Color,
	}
}
