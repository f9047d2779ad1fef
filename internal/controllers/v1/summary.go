package v1

import (
	"fmt"
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterSummaryRoutes registers the routes for summaries with the
// RouterGroup that is passed.
func RegisterSummaryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/totals", httputil.OptionsGet)
	r.GET("/totals", GetSummaryTotals)

	r.OPTIONS("/by-period", httputil.OptionsGet)
	r.GET("/by-period", GetSummaryByPeriod)

	r.OPTIONS("/monthly-trends", httputil.OptionsGet)
	r.GET("/monthly-trends", GetMonthlyTrends)
}

// GetSummaryTotals returns the overall budgeted and current totals,
// optionally filtered by period name and month.
func GetSummaryTotals(c *gin.Context) {
	var query struct {
		Period  string `form:"period"`
		MonthID uint   `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	key := fmt.Sprintf("summary:totals:%s:%d", query.Period, query.MonthID)

	var totals models.SummaryTotals
	if store.Get(c.Request.Context(), key, &totals) {
		c.JSON(http.StatusOK, totals)
		return
	}

	totals, err := models.Totals(models.DB, query.Period, query.MonthID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.Set(c.Request.Context(), key, totals)
	c.JSON(http.StatusOK, totals)
}

// GetSummaryByPeriod returns income, expenses and difference per period plus
// grand totals.
func GetSummaryByPeriod(c *gin.Context) {
	var query struct {
		MonthID uint `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	key := fmt.Sprintf("summary:by-period:%d", query.MonthID)

	var report models.PeriodSummaryReport
	if store.Get(c.Request.Context(), key, &report) {
		c.JSON(http.StatusOK, report)
		return
	}

	report, err := models.PeriodSummaries(models.DB, query.MonthID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.Set(c.Request.Context(), key, report)
	c.JSON(http.StatusOK, report)
}

// GetMonthlyTrends returns per-month income, expenses, savings and category
// breakdowns for the most recent months.
func GetMonthlyTrends(c *gin.Context) {
	var query struct {
		Months int `form:"months"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	if query.Months <= 0 {
		query.Months = 12
	}

	key := fmt.Sprintf("summary:monthly-trends:%d", query.Months)

	var report models.MonthlyTrendReport
	if store.Get(c.Request.Context(), key, &report) {
		c.JSON(http.StatusOK, report)
		return
	}

	report, err := models.MonthlyTrends(models.DB, query.Months)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.Set(c.Request.Context(), key, report)
	c.JSON(http.StatusOK, report)
}
