package v1_test

import (
	"fmt"
	"net/http"

	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestSummaryTotals() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	_ = suite.createTestExpense(models.Expense{
		MonthID: month.ID,
		Budget:  decimal.NewFromInt(100),
		Cost:    decimal.NewFromInt(80),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID: month.ID,
		Budget:  decimal.NewFromInt(500),
		Amount:  decimal.NewFromInt(520),
	})

	r := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/summary/totals?month_id=%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var totals models.SummaryTotals
	test.DecodeResponse(suite.T(), &r, &totals)
	assert.True(suite.T(), totals.TotalBudgeted.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), totals.TotalCurrent.Equal(decimal.NewFromInt(440)))
}

func (suite *TestSuiteStandard) TestSummaryTotalsInvalidMonthID() {
	r := suite.request(http.MethodGet, "/api/v1/summary/totals?month_id=notANumber", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSummaryByPeriod() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	period := suite.createTestPeriod(models.Period{Name: "Monthly"})
	_ = suite.createTestExpense(models.Expense{
		MonthID:  month.ID,
		PeriodID: period.ID,
		Cost:     decimal.NewFromInt(100),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID:  month.ID,
		PeriodID: period.ID,
		Amount:   decimal.NewFromInt(1500),
	})

	r := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/summary/by-period?month_id=%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var report models.PeriodSummaryReport
	test.DecodeResponse(suite.T(), &r, &report)
	require.NotEmpty(suite.T(), report.Periods)
	assert.True(suite.T(), report.GrandTotalIncome.Equal(decimal.NewFromInt(1500)))
	assert.True(suite.T(), report.GrandTotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), report.GrandTotalDifference.Equal(decimal.NewFromInt(1400)))
}

func (suite *TestSuiteStandard) TestSummaryMonthlyTrends() {
	january := suite.createTestMonth(models.Month{Year: 2024, Month: 1})
	_ = suite.createTestMonth(models.Month{Year: 2024, Month: 2})
	_ = suite.createTestExpense(models.Expense{MonthID: january.ID, Cost: decimal.NewFromInt(400)})
	_ = suite.createTestIncome(models.Income{MonthID: january.ID, Amount: decimal.NewFromInt(1600)})

	r := suite.request(http.MethodGet, "/api/v1/summary/monthly-trends?months=6", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var report models.MonthlyTrendReport
	test.DecodeResponse(suite.T(), &r, &report)
	require.Len(suite.T(), report.Months, 2)
	assert.Equal(suite.T(), "January 2024", report.Months[0].MonthName)
	assert.True(suite.T(), report.Months[0].SavingsRate.Equal(decimal.NewFromInt(75)))
}
