package v1

import "github.com/appz-budget/backend/internal/models"

// IncomeTypeEditable represents the fields of an income type clients can
// set.
type IncomeTypeEditable struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (e IncomeTypeEditable) model() models.IncomeType {
	return models.IncomeType{
		Name:  e.Name,
		Color: e.Color,
	}
}
