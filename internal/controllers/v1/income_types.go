package v1

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/shopspring/decimal"
)

// IncomeEditable represents the fields of an income clients can set.
type IncomeEditable struct {
	IncomeTypeID uint            `json:"income_type_id" binding:"required"`
	PeriodID     uint            `json:"period_id" binding:"required"`
	Budget       decimal.Decimal `json:"budget"`
	Amount       decimal.Decimal `json:"amount"`
	MonthID      uint            `json:"month_id" binding:"required"`
}

func (i IncomeEditable) model() models.Income {
	return models.Income{
		IncomeTypeID: i.IncomeTypeID,
		PeriodID:     i.PeriodID,
		Budget:       i.Budget,
		Amount:       i.Amount,
		MonthID:      i.MonthID,
	}
}

// IncomeUpdate represents a partial update of an income.
type IncomeUpdate struct {
	IncomeTypeID *uint            `json:"income_type_id"`
	PeriodID     *uint            `json:"period_id"`
	Budget       *decimal.Decimal `json:"budget"`
	Amount       *decimal.Decimal `json:"amount"`
	MonthID      *uint            `json:"month_id"`
}

// IncomeResponse is an income with the income type and period names resolved
// for display.
type IncomeResponse struct {
	models.Income
	IncomeType string `json:"income_type"`
	Period     string `json:"period"`
}

func newIncomeResponse(income models.Income) IncomeResponse {
	return IncomeResponse{
		Income:     income,
		IncomeType: income.IncomeType.Name,
		Period:     income.Period.Name,
	}
}

func newIncomeResponses(incomes []models.Income) []IncomeResponse {
	responses := make([]IncomeResponse, 0, len(incomes))
	for _, income := range incomes {
		responses = append(responses, newIncomeResponse(income))
	}

	return responses
}
