package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/appz-budget/backend/internal/controllers/v1"
	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPeriodCreate() {
	r := suite.request(http.MethodPost, "/api/v1/periods", v1.PeriodEditable{Name: "Fixed/1st Period"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var period models.Period
	test.DecodeResponse(suite.T(), &r, &period)
	assert.Equal(suite.T(), "Fixed/1st Period", period.Name)
}

func (suite *TestSuiteStandard) TestPeriodCreateDuplicate() {
	_ = suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})

	r := suite.request(http.MethodPost, "/api/v1/periods", v1.PeriodEditable{Name: "Fixed/1st Period"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

func (suite *TestSuiteStandard) TestPeriodDeleteInUse() {
	period := suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})
	_ = suite.createTestIncome(models.Income{PeriodID: period.ID})

	r := suite.request(http.MethodDelete, fmt.Sprintf("/api/v1/periods/%d", period.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "cannot delete period")
}

func (suite *TestSuiteStandard) TestPeriodList() {
	_ = suite.createTestPeriod(models.Period{Name: "2nd Period"})
	_ = suite.createTestPeriod(models.Period{Name: "Fixed/1st Period"})

	r := suite.request(http.MethodGet, "/api/v1/periods", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var periods []models.Period
	test.DecodeResponse(suite.T(), &r, &periods)
	assert.Len(suite.T(), periods, 2)
}
