package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/appz-budget/backend/internal/controllers/v1"
	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestMonthCreate() {
	r := suite.request(http.MethodPost, "/api/v1/months", v1.MonthEditable{Year: 2024, Month: 11})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var month models.Month
	test.DecodeResponse(suite.T(), &r, &month)
	assert.Equal(suite.T(), "November 2024", month.Name)
	assert.Equal(suite.T(), "Admin Example", month.CreatedBy)
}

func (suite *TestSuiteStandard) TestMonthCreateDuplicate() {
	_ = suite.createTestMonth(models.Month{Year: 2024, Month: 11})

	r := suite.request(http.MethodPost, "/api/v1/months", v1.MonthEditable{Year: 2024, Month: 11})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestMonthCreateInvalidBody() {
	tests := []struct {
		name string
		body any
	}{
		{"broken JSON", `{ broken`},
		{"missing fields", map[string]int{"year": 2024}},
		{"month out of range", v1.MonthEditable{Year: 2024, Month: 13}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodPost, "/api/v1/months", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestMonthGet() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})

	r := suite.request(http.MethodGet, fmt.Sprintf("/api/v1/months/%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response models.Month
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), month.ID, response.ID)
}

func (suite *TestSuiteStandard) TestMonthGetNotFound() {
	r := suite.request(http.MethodGet, "/api/v1/months/4096", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthList() {
	_ = suite.createTestMonth(models.Month{Year: 2024, Month: 1})
	_ = suite.createTestMonth(models.Month{Year: 2024, Month: 2})

	r := suite.request(http.MethodGet, "/api/v1/months", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var months []models.Month
	test.DecodeResponse(suite.T(), &r, &months)
	require.Len(suite.T(), months, 2)
	assert.Equal(suite.T(), "February 2024", months[0].Name)
}

func (suite *TestSuiteStandard) TestMonthGetByYearMonth() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 7})

	r := suite.request(http.MethodGet, "/api/v1/months/year/2024/month/7", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response models.Month
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), month.ID, response.ID)

	r = suite.request(http.MethodGet, "/api/v1/months/year/2024/month/8", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMonthCurrent() {
	month := suite.createTestMonth(models.Month{})

	r := suite.request(http.MethodGet, "/api/v1/months/current", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response models.Month
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), month.ID, response.ID)
}

func (suite *TestSuiteStandard) TestMonthUpdate() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})

	newMonth := 12
	r := suite.request(http.MethodPut, fmt.Sprintf("/api/v1/months/%d", month.ID), v1.MonthUpdate{Month: &newMonth})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response models.Month
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "December 2024", response.Name)
}

func (suite *TestSuiteStandard) TestMonthDelete() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})
	expense := suite.createTestExpense(models.Expense{MonthID: month.ID})

	r := suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/months/%d", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	err := models.DB.First(&models.Month{}, month.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)

	err = models.DB.First(&models.Expense{}, expense.ID).Error
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMonthCloseOpen() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})

	r := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/months/%d/close", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var closed v1.MonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &closed)
	assert.True(suite.T(), closed.IsClosed)
	assert.Equal(suite.T(), "Admin Example", closed.ClosedBy)
	assert.Equal(suite.T(), "Month 'November 2024' has been closed", closed.Message)

	// Closing twice is rejected
	r = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/months/%d/close", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/months/%d/open", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var opened v1.MonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &opened)
	assert.False(suite.T(), opened.IsClosed)
	assert.Equal(suite.T(), "Month 'November 2024' has been reopened", opened.Message)

	// Reopening an open month is rejected
	r = suite.request(http.MethodPost, fmt.Sprintf("/api/v1/months/%d/open", month.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMonthOptions() {
	r := suite.request(http.MethodOptions, "/api/v1/months", "")
	assert.Equal(suite.T(), http.StatusNoContent, r.Code)
	assert.Equal(suite.T(), "GET, POST", r.Header().Get("allow"))
}
