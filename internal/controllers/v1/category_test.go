package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/appz-budget/backend/internal/controllers/v1"
	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryCreate() {
	r := suite.request(http.MethodPost, "/api/v1/categories", v1.CategoryEditable{Name: "Groceries"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var category models.Category
	test.DecodeResponse(suite.T(), &r, &category)
	assert.Equal(suite.T(), "Groceries", category.Name)
	assert.Equal(suite.T(), "#8b5cf6", category.Color)
}

func (suite *TestSuiteStandard) TestCategoryCreateDuplicate() {
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	r := suite.request(http.MethodPost, "/api/v1/categories", v1.CategoryEditable{Name: "Groceries"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
	assert.Equal(suite.T(), models.ErrCategoryNameTaken.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

func (suite *TestSuiteStandard) TestCategoryList() {
	_ = suite.createTestCategory(models.Category{Name: "Housing"})
	_ = suite.createTestCategory(models.Category{Name: "Groceries"})

	r := suite.request(http.MethodGet, "/api/v1/categories", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var categories []models.Category
	test.DecodeResponse(suite.T(), &r, &categories)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Groceries", categories[0].Name)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory(models.Category{Name: "Groceries", Color: "#ff0000"})

	r := suite.request(http.MethodPut, fmt.Sprintf("/api/v1/categories/%d", category.ID), v1.CategoryEditable{Name: "Food"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response models.Category
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "Food", response.Name)

	// Omitting the color keeps the current one
	assert.Equal(suite.T(), "#ff0000", response.Color)
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})

	r := suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

func (suite *TestSuiteStandard) TestCategoryDeleteInUse() {
	category := suite.createTestCategory(models.Category{Name: "Groceries"})
	_ = suite.createTestExpense(models.Expense{CategoryID: category.ID})

	r := suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", category.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "cannot delete category")
}

func (suite *TestSuiteStandard) TestCategorySummary() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 4})
	groceries := suite.createTestCategory(models.Category{Name: "Groceries"})

	_ = suite.createTestExpense(models.Expense{
		MonthID:    month.ID,
		CategoryID: groceries.ID,
		Budget:     decimal.NewFromInt(100),
		Cost:       decimal.NewFromInt(120),
	})

	r := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/categories/summary?month_id=%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var summaries []models.CategorySummary
	test.DecodeResponse(suite.T(), &r, &summaries)
	require.Len(suite.T(), summaries, 1)
	assert.Equal(suite.T(), "Groceries", summaries[0].Category)
	assert.True(suite.T(), summaries[0].OverBudget)
}

func (suite *TestSuiteStandard) TestCategoryNotFound() {
	r := suite.request(http.MethodGet, "/api/v1/categories/4096", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
