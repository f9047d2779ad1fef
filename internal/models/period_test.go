package models_test

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestPeriodNameUnique() {
	_ = suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})

	err := models.DB.Create(&models.Period{Name: "Fixed/1st Period"}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrPeriodNameTaken)
}

// TestPeriodDeleteInUse verifies that a period cannot be removed while
// expenses or incomes reference it.
func (suite *TestSuiteStandard) TestPeriodDeleteInUse() {
	period := suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})
	_ = suite.createTestExpense(models.Expense{PeriodID: period.ID})
	_ = suite.createTestIncome(models.Income{PeriodID: period.ID})

	err := models.DB.Delete(&period).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrPeriodInUse)
	assert.Contains(suite.T(), err.Error(), "1 expense(s)")
	assert.Contains(suite.T(), err.Error(), "1 income(s)")
}

func (suite *TestSuiteStandard) TestPeriodDeleteUnused() {
	period := suite.createTestPeriod(models.Period{Name: "2nd Period"})
	assert.Nil(suite.T(), models.DB.Delete(&period).Error)
}
