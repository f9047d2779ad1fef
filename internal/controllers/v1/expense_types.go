package v1

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// ExpenseEditable represents the fields of an expense clients can set.
type ExpenseEditable struct {
	ExpenseName string            `json:"expense_name" binding:"required"`
	CategoryID  uint              `json:"category_id" binding:"required"`
	PeriodID    uint              `json:"period_id" binding:"required"`
	Budget      decimal.Decimal   `json:"budget"`
	Cost        decimal.Decimal   `json:"cost"`
	Notes       string            `json:"notes"`
	MonthID     uint              `json:"month_id" binding:"required"`
	Purchases   []models.Purchase `json:"purchases"`
	Order       *int              `json:"order"`
	ExpenseDate types.Date        `json:"expense_date"`
}

func (e ExpenseEditable) model() models.Expense {
	expense := models.Expense{
		Name:        e.ExpenseName,
		CategoryID:  e.CategoryID,
		PeriodID:    e.PeriodID,
		Budget:      e.Budget,
		Cost:        e.Cost,
		Notes:       e.Notes,
		MonthID:     e.MonthID,
		Purchases:   e.Purchases,
		ExpenseDate: e.ExpenseDate,
	}

	if e.Order != nil {
		expense.Order = *e.Order
	}

	return expense
}

// ExpenseUpdate represents a partial update of an expense.
type ExpenseUpdate struct {
	ExpenseName *string            `json:"expense_name"`
	CategoryID  *uint              `json:"category_id"`
	PeriodID    *uint              `json:"period_id"`
	Budget      *decimal.Decimal   `json:"budget"`
	Cost        *decimal.Decimal   `json:"cost"`
	Notes       *string            `json:"notes"`
	MonthID     *uint              `json:"month_id"`
	Purchases   *[]models.Purchase `json:"purchases"`
	Order       *int               `json:"order"`
	ExpenseDate *types.Date        `json:"expense_date"`
}

// ExpenseResponse is an expense with the category and period names resolved
// for display.
type ExpenseResponse struct {
	models.Expense
	Category string `json:"category"`
	Period   string `json:"period"`
}

func newExpenseResponse(expense models.Expense) ExpenseResponse {
	return ExpenseResponse{
		Expense:  expense,
		Category: expense.Category.Name,
		Period:   expense.Period.Name,
	}
}

func newExpenseResponses(expenses []models.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		responses = append(responses, newExpenseResponse(expense))
	}

	return responses
}

// ExpenseReorderRequest is the list of expense ids in the desired order.
type ExpenseReorderRequest struct {
	ExpenseIDs []uint `json:"expense_ids"`
}

// ExpensePayRequest is the optional body of the pay endpoint. Without an
// amount, the expense's budget is paid.
type ExpensePayRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

// CloneExpensesResponse reports how much data was cloned into which month.
type CloneExpensesResponse struct {
	Message           string `json:"message"`
	ClonedCount       int    `json:"cloned_count"`
	ClonedIncomeCount int    `json:"cloned_income_count"`
	NextMonthID       uint   `json:"next_month_id"`
	NextMonthName     string `json:"next_month_name"`
}
