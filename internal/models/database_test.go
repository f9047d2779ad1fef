package models_test

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDatabaseClosed verifies that database errors are replaced with a
// generic error that does not leak internals.
func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	_, err := models.Categories(models.DB)
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrGeneral)
}

func (suite *TestSuiteStandard) TestNotFoundNamesResource() {
	err := models.DB.First(&models.Category{}, 4096).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.Equal(suite.T(), "there is no category matching your query", err.Error())

	err = models.DB.First(&models.IncomeType{}, 4096).Error
	require.NotNil(suite.T(), err)
	assert.Equal(suite.T(), "there is no income type matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestConnectInvalidPath() {
	err := models.Connect("/proc/does/not/exist/db.sqlite")
	assert.NotNil(suite.T(), err)
}
