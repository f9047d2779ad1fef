package models_test

import (
	"github.com/appz-budget/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryDefaultColor() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	assert.Equal(suite.T(), "#8b5cf6", category.Color)

	colored := suite.createTestCategory(models.Category{Name: "Housing", Color: "#ff0000"})
	assert.Equal(suite.T(), "#ff0000", colored.Color)
}

func (suite *TestSuiteStandard) TestCategoryNameUnique() {
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	err := models.DB.Create(&models.Category{Name: "Groceries"}).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameTaken)
}

func (suite *TestSuiteStandard) TestCategoryNameTrimmed() {
	category := suite.createTestCategory(models.Category{Name: "  Groceries "})
	assert.Equal(suite.T(), "Groceries", category.Name)
}

func (suite *TestSuiteStandard) TestCategoryDeleteInUse() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID})

	err := models.DB.Delete(&category).Error
	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrCategoryInUse)
	assert.Contains(suite.T(), err.Error(), "1 expense(s)")
}

func (suite *TestSuiteStandard) TestCategoryDeleteUnused() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	assert.Nil(suite.T(), models.DB.Delete(&category).Error)
}

func (suite *TestSuiteStandard) TestCategoriesOrder() {
	_ = suite.createTestCategory(models.Category{Name: "Housing"})
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	categories, err := models.Categories(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Groceries", categories[0].Name)
	assert.Equal(suite.T(), "Housing", categories[1].Name)
}
