package v1_test

import (
	"bytes"
	"fmt"
	"net/http"
	"testing"

	"github.com/appz-budget/backend/internal/models"
	"github.com/appz-budget/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx file from the given rows.
func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.Nil(t, err)
		require.Nil(t, f.SetSheetRow(sheet, cell, &row))
	}

	buffer, err := f.WriteToBuffer()
	require.Nil(t, err)

	return buffer
}

type importResponse struct {
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Errors   int    `json:"errors"`
}

func (suite *TestSuiteStandard) TestImportExcel() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})

	buffer := workbook(suite.T(), [][]any{
		{"Expense details", "Category", "Period", "Budget", "Cost"},
		{"Rent", "Housing", "", "1200", "1180"},
		{"Groceries", "Food", "2nd Period", "400", ""},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.xlsx")
	r := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/import/excel?month_id=%d", month.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response importResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), 2, response.Imported)
	assert.Equal(suite.T(), 0, response.Errors)
	assert.Equal(suite.T(), "Successfully imported 2 expense(s)", response.Message)

	expenses, err := models.Expenses(models.DB, models.ExpenseFilter{MonthID: month.ID})
	require.Nil(suite.T(), err)
	require.Len(suite.T(), expenses, 2)

	// Categories and periods are created on the fly, an empty period falls
	// back to the default
	byName := make(map[string]models.Expense)
	for _, expense := range expenses {
		byName[expense.Name] = expense
	}

	assert.Equal(suite.T(), "Housing", byName["Rent"].Category.Name)
	assert.Equal(suite.T(), "Fixed/1st Period", byName["Rent"].Period.Name)
	assert.Equal(suite.T(), "2nd Period", byName["Groceries"].Period.Name)
}

// TestImportExcelCurrentMonth verifies that the current month is created
// when no month_id is given and it does not exist yet.
func (suite *TestSuiteStandard) TestImportExcelCurrentMonth() {
	buffer := workbook(suite.T(), [][]any{
		{"Expense details", "Category"},
		{"Rent", "Housing"},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.xlsx")
	r := suite.request(http.MethodPost, "/api/v1/import/excel", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	month, err := models.CurrentMonth(models.DB)
	require.Nil(suite.T(), err)

	expenses, err := models.Expenses(models.DB, models.ExpenseFilter{MonthID: month.ID})
	require.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)
}

func (suite *TestSuiteStandard) TestImportExcelClosedMonth() {
	month := suite.createTestMonth(models.Month{Year: 2024, Month: 11})
	require.Nil(suite.T(), month.Close(models.DB, ""))

	buffer := workbook(suite.T(), [][]any{
		{"Expense details", "Category"},
		{"Rent", "Housing"},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.xlsx")
	r := suite.request(http.MethodPost, fmt.Sprintf("/api/v1/import/excel?month_id=%d", month.ID), body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportExcelInvalidMonthID() {
	buffer := workbook(suite.T(), [][]any{
		{"Expense details", "Category"},
		{"Rent", "Housing"},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.xlsx")
	r := suite.request(http.MethodPost, "/api/v1/import/excel?month_id=notANumber", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportExcelNoFile() {
	r := suite.request(http.MethodPost, "/api/v1/import/excel", map[string]string{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportExcelWrongSuffix() {
	buffer := workbook(suite.T(), [][]any{
		{"Expense details", "Category"},
		{"Rent", "Housing"},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.csv")
	r := suite.request(http.MethodPost, "/api/v1/import/excel", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestImportExcelMissingColumns() {
	buffer := workbook(suite.T(), [][]any{
		{"Something", "Else"},
		{"Rent", "Housing"},
	})

	body, headers := test.UploadFile(suite.T(), buffer, "import.xlsx")
	r := suite.request(http.MethodPost, "/api/v1/import/excel", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	assert.Contains(suite.T(), test.DecodeError(suite.T(), r.Body.Bytes()), "missing required columns")
}
