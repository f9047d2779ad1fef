package v1

import "github.com/appz-budget/backend/internal/models"

// PeriodEditable represents the fields of a period clients can set.
type PeriodEditable struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (e PeriodEditable) model() models.Period {
	return models.Period{
		Name:  e.Name,
		Color: e.Color,
	}
}
