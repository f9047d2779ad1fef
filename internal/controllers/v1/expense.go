package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// RegisterExpenseRoutes registers the routes for expenses with the
// RouterGroup that is passed.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", GetExpenses)
		r.POST("", CreateExpense)
	}

	r.POST("/reorder", ReorderExpenses)
	r.POST("/clone-to-next-month/:id", CloneExpensesToNextMonth)

	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", GetExpense)
		r.PUT("/:id", UpdateExpense)
		r.DELETE("/:id", DeleteExpense)
	}

	r.POST("/:id/pay", PayExpense)
}

func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsExpenseDetail(c *gin.Context) {
	if _, ok := expenseFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// expenseFromURI loads the expense referenced by the id URI parameter with
// its category and period. On failure the error response has already been
// written.
func expenseFromURI(c *gin.Context) (models.Expense, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Expense{}, false
	}

	var expense models.Expense
	err = models.DB.Joins("Category").Joins("Period").First(&expense, "expenses.id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Expense{}, false
	}

	return expense, true
}

// monthGate rejects the request when the month the expense or income belongs
// to is closed. The returned error response names the month.
func monthGate(c *gin.Context, monthID uint, action string) bool {
	var month models.Month
	err := models.DB.First(&month, monthID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	if month.IsClosed {
		err := month.Gate(action)
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return false
	}

	return true
}

// CreateExpense creates a new expense. Without an explicit order it is
// placed at the end of its month.
func CreateExpense(c *gin.Context) {
	var editable ExpenseEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !monthGate(c, editable.MonthID, "add expense") {
		return
	}

	expense := editable.model()
	expense.SetActor(actor(c))

	if editable.Order == nil {
		order, err := models.NextExpenseOrder(models.DB, editable.MonthID)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		expense.Order = order
	}

	err = models.DB.Create(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Joins("Category").Joins("Period").First(&expense, "expenses.id = ?", expense.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusCreated, newExpenseResponse(expense))
}

// GetExpenses returns all expenses, filtered by the period, category and
// month_id query parameters.
func GetExpenses(c *gin.Context) {
	var query struct {
		Period   string `form:"period"`
		Category string `form:"category"`
		MonthID  uint   `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	expenses, err := models.Expenses(models.DB, models.ExpenseFilter{
		Period:   query.Period,
		Category: query.Category,
		MonthID:  query.MonthID,
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, newExpenseResponses(expenses))
}

func GetExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// UpdateExpense updates an expense. Sending purchases recalculates the cost,
// sending a cost without purchases clears them.
func UpdateExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	if !monthGate(c, expense.MonthID, "update expense") {
		return
	}

	var update ExpenseUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	// Moving the expense into a closed month is not allowed either
	if update.MonthID != nil && *update.MonthID != expense.MonthID {
		if !monthGate(c, *update.MonthID, "update expense") {
			return
		}

		expense.MonthID = *update.MonthID
	}

	if update.ExpenseName != nil {
		expense.Name = *update.ExpenseName
	}

	if update.CategoryID != nil {
		expense.CategoryID = *update.CategoryID
	}

	if update.PeriodID != nil {
		expense.PeriodID = *update.PeriodID
	}

	if update.Budget != nil {
		expense.Budget = *update.Budget
	}

	if update.Notes != nil {
		expense.Notes = *update.Notes
	}

	if update.Order != nil {
		expense.Order = *update.Order
	}

	if update.ExpenseDate != nil {
		expense.ExpenseDate = *update.ExpenseDate
	}

	if update.Purchases != nil {
		expense.Purchases = *update.Purchases
	}

	if update.Cost != nil {
		expense.Cost = *update.Cost

		// An explicit cost replaces the purchase history
		if update.Purchases == nil {
			expense.Purchases = nil
		}
	}

	expense.SetActor(actor(c))

	// The loaded Category and Period still reference the old rows, only the
	// id fields are authoritative here.
	err = models.DB.Omit(clause.Associations).Save(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Joins("Category").Joins("Period").First(&expense, "expenses.id = ?", expense.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

func DeleteExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	if !monthGate(c, expense.MonthID, "delete expense") {
		return
	}

	err := models.DB.Delete(&expense).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// ReorderExpenses rewrites the manual sort order of the given expenses to
// match the order of the id list.
func ReorderExpenses(c *gin.Context) {
	var request ExpenseReorderRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if len(request.ExpenseIDs) == 0 {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errReorderIDsEmpty.Error(),
		})
		return
	}

	expenses, err := models.ReorderExpenses(models.DB, request.ExpenseIDs, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, newExpenseResponses(expenses))
}

// PayExpense applies a payment against an expense. Without an amount in the
// body, the expense's budget is paid. Payments accumulate.
func PayExpense(c *gin.Context) {
	expense, ok := expenseFromURI(c)
	if !ok {
		return
	}

	if !monthGate(c, expense.MonthID, "pay expense") {
		return
	}

	// The body is optional
	var request ExpensePayRequest
	err := httputil.BindData(c, &request)
	if err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	amount := expense.Budget
	if request.Amount != nil {
		amount = *request.Amount
	}

	err = expense.Pay(models.DB, amount, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, newExpenseResponse(expense))
}

// CloneExpensesToNextMonth copies the expenses and incomes of a month into
// the following month, creating it when it does not exist yet. Cloned
// expenses start with no cost, cloned incomes with no amount.
func CloneExpensesToNextMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	next, expenses, incomes, err := month.Clone(models.DB, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var parts []string
	if expenses > 0 {
		parts = append(parts, fmt.Sprintf("%d expense(s)", expenses))
	}

	if incomes > 0 {
		parts = append(parts, fmt.Sprintf("%d income(s)", incomes))
	}

	message := fmt.Sprintf("No data to clone for %s", next.Name)
	if len(parts) > 0 {
		message = fmt.Sprintf("Successfully cloned %s to %s", strings.Join(parts, ", "), next.Name)
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, CloneExpensesResponse{
		Message:           message,
		ClonedCount:       expenses,
		ClonedIncomeCount: incomes,
		NextMonthID:       next.ID,
		NextMonthName:     next.Name,
	})
}
