package models_test

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTotals() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	period := suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})

	_ = suite.createTestExpense(models.Expense{
		MonthID:  month.ID,
		PeriodID: period.ID,
		Budget:   decimal.NewFromInt(100),
		Cost:     decimal.NewFromInt(80),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID:  month.ID,
		PeriodID: period.ID,
		Budget:   decimal.NewFromInt(500),
		Amount:   decimal.NewFromInt(520),
	})

	totals, err := models.Totals(models.DB, "", month.ID)
	require.Nil(suite.T(), err)

	assert.True(suite.T(), totals.TotalBudgetedExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), totals.TotalCurrentExpenses.Equal(decimal.NewFromInt(80)))
	assert.True(suite.T(), totals.TotalBudgetedIncome.Equal(decimal.NewFromInt(500)))
	assert.True(suite.T(), totals.TotalCurrentIncome.Equal(decimal.NewFromInt(520)))
	assert.True(suite.T(), totals.TotalBudgeted.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), totals.TotalCurrent.Equal(decimal.NewFromInt(440)))
}

func (suite *TestSuiteStandard) TestCategorySummaries() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})
	housing := suite.createTestCategory(models.Category{Name: "Housing"})

	_ = suite.createTestExpense(models.Expense{
		MonthID:    month.ID,
		CategoryID: groceries.ID,
		Budget:     decimal.NewFromInt(200),
		Cost:       decimal.NewFromInt(250),
	})
	_ = suite.createTestExpense(models.Expense{
		MonthID:    month.ID,
		CategoryID: groceries.ID,
		Budget:     decimal.NewFromInt(50),
		Cost:       decimal.NewFromInt(10),
	})
	_ = suite.createTestExpense(models.Expense{
		MonthID:    month.ID,
		CategoryID: housing.ID,
		Budget:     decimal.NewFromInt(1200),
		Cost:       decimal.NewFromInt(1200),
	})

	summaries, err := models.CategorySummaries(models.DB, month.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), summaries, 2)

	assert.Equal(suite.T(), "Groceries", summaries[0].Category)
	assert.True(suite.T(), summaries[0].Budget.Equal(decimal.NewFromInt(250)))
	assert.True(suite.T(), summaries[0].Total.Equal(decimal.NewFromInt(260)))
	assert.True(suite.T(), summaries[0].OverBudget)

	// Spending exactly the budget is not over budget
	assert.Equal(suite.T(), "Housing", summaries[1].Category)
	assert.False(suite.T(), summaries[1].OverBudget)
}

func (suite *TestSuiteStandard) TestIncomeTypeSummaries() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	salary := suite.createTestIncomeType(models.IncomeType{Name: "Salary"})

	_ = suite.createTestIncome(models.Income{
		MonthID:      month.ID,
		IncomeTypeID: salary.ID,
		Budget:       decimal.NewFromInt(3000),
		Amount:       decimal.NewFromInt(3100),
	})

	summaries, err := models.IncomeTypeSummaries(models.DB, "", month.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), summaries, 1)
	assert.Equal(suite.T(), "Salary", summaries[0].IncomeType)
	assert.True(suite.T(), summaries[0].Budget.Equal(decimal.NewFromInt(3000)))
	assert.True(suite.T(), summaries[0].Total.Equal(decimal.NewFromInt(3100)))
}

func (suite *TestSuiteStandard) TestPeriodSummaries() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	first := suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})
	second := suite.createTestPeriod(models.Period{Name: "2nd Period"})

	_ = suite.createTestExpense(models.Expense{
		MonthID:  month.ID,
		PeriodID: first.ID,
		Cost:     decimal.NewFromInt(100),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID:  month.ID,
		PeriodID: first.ID,
		Amount:   decimal.NewFromInt(1500),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID:  month.ID,
		PeriodID: second.ID,
		Amount:   decimal.NewFromInt(500),
	})

	report, err := models.PeriodSummaries(models.DB, month.ID)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), report.Periods, 2)

	byName := make(map[string]models.PeriodSummary)
	for _, summary := range report.Periods {
		byName[summary.Period] = summary
	}

	assert.True(suite.T(), byName["Fixed/1st Period"].TotalIncome.Equal(decimal.NewFromInt(1500)))
	assert.True(suite.T(), byName["Fixed/1st Period"].TotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), byName["Fixed/1st Period"].Difference.Equal(decimal.NewFromInt(1400)))

	assert.True(suite.T(), report.GrandTotalIncome.Equal(decimal.NewFromInt(2000)))
	assert.True(suite.T(), report.GrandTotalExpenses.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), report.GrandTotalDifference.Equal(decimal.NewFromInt(1900)))
}

func (suite *TestSuiteStandard) TestMonthlyTrends() {
	january := suite.createTestMonth(models.Month{Year: 2024, Month: 1})
	february := suite.createTestMonth(models.Month{Year: 2024, Month: 2})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries", Color: "#ff0000"})

	_ = suite.createTestExpense(models.Expense{
		MonthID:    january.ID,
		CategoryID: groceries.ID,
		Cost:       decimal.NewFromInt(400),
	})
	_ = suite.createTestIncome(models.Income{
		MonthID: january.ID,
		Amount:  decimal.NewFromInt(1600),
	})
	_ = suite.createTestExpense(models.Expense{
		MonthID:    february.ID,
		CategoryID: groceries.ID,
		Cost:       decimal.NewFromInt(300),
	})

	report, err := models.MonthlyTrends(models.DB, 12)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), report.Months, 2)

	// Oldest month first
	assert.Equal(suite.T(), "January 2024", report.Months[0].MonthName)
	assert.Equal(suite.T(), "February 2024", report.Months[1].MonthName)

	january2024 := report.Months[0]
	assert.True(suite.T(), january2024.TotalIncome.Equal(decimal.NewFromInt(1600)))
	assert.True(suite.T(), january2024.TotalExpenses.Equal(decimal.NewFromInt(400)))
	assert.True(suite.T(), january2024.NetSavings.Equal(decimal.NewFromInt(1200)))
	assert.True(suite.T(), january2024.SavingsRate.Equal(decimal.NewFromInt(75)), "Savings rate is %s", january2024.SavingsRate)

	require.Len(suite.T(), january2024.Categories, 1)
	assert.Equal(suite.T(), "Groceries", january2024.Categories[0].Category)
	assert.Equal(suite.T(), "#ff0000", january2024.Categories[0].Color)

	// A month without income has no savings rate
	assert.True(suite.T(), report.Months[1].SavingsRate.IsZero())

	// The savings rate average only counts months with income
	assert.True(suite.T(), report.AverageSavingsRate.Equal(decimal.NewFromInt(75)), "Average savings rate is %s", report.AverageSavingsRate)
}

func (suite *TestSuiteStandard) TestMonthlyTrendsLimit() {
	for month := 1; month <= 6; month++ {
		_ = suite.createTestMonth(models.Month{Year: 2024, Month: month})
	}

	report, err := models.MonthlyTrends(models.DB, 3)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), report.Months, 3)

	// The three most recent months, oldest first
	assert.Equal(suite.T(), "April 2024", report.Months[0].MonthName)
	assert.Equal(suite.T(), "June 2024", report.Months[2].MonthName)
}
