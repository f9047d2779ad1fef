package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/importer"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterImportRoutes registers the routes for imports with the RouterGroup
// that is passed.
func RegisterImportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/excel", httputil.OptionsPost)
	r.POST("/excel", ImportExcel)
}

// ImportExcel imports expenses from an uploaded Excel workbook. Missing
// categories and periods are created on the fly. Without a month_id query
// parameter the expenses land in the current month, which is created when it
// does not exist yet.
func ImportExcel(c *gin.Context) {
	formFile, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errNoFilePost.Error(),
		})
		return
	}

	if !strings.HasSuffix(strings.ToLower(formFile.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errWrongFileSuffix.Error(),
		})
		return
	}

	file, err := formFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}
	defer file.Close()

	rows, err := importer.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	var query struct {
		MonthID uint `form:"month_id"`
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	month, err := importMonth(query.MonthID, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if month.IsClosed {
		err := month.Gate("import expenses")
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var imported int
	var rowErrors []string

	for _, row := range rows {
		err := importRow(row, month, actor(c))
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", row.Line, err.Error()))
			continue
		}

		imported++
	}

	if imported == 0 && len(rowErrors) > 0 {
		sample := rowErrors
		if len(sample) > 5 {
			sample = sample[:5]
		}

		c.JSON(http.StatusBadRequest, httpError{
			Error: fmt.Sprintf("No expenses imported. Errors: %s", strings.Join(sample, "; ")),
		})
		return
	}

	message := fmt.Sprintf("Successfully imported %d expense(s)", imported)
	if len(rowErrors) > 0 {
		message += fmt.Sprintf(". %d row(s) had errors", len(rowErrors))
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"imported": imported,
		"errors":   len(rowErrors),
	})
}

// importMonth resolves the target month for an import. Without an explicit
// id, today's month is used and created when missing.
func importMonth(monthID uint, act string) (models.Month, error) {
	if monthID != 0 {
		var month models.Month
		err := models.DB.First(&month, monthID).Error
		return month, err
	}

	month, err := models.MonthByDate(models.DB, time.Now())
	if err == nil {
		return month, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Month{}, err
	}

	now := time.Now()
	month = models.Month{Year: now.Year(), Month: int(now.Month())}
	month.SetActor(act)

	err = models.DB.Create(&month).Error
	return month, err
}

// importRow creates one expense from a parsed workbook row.
func importRow(row importer.Row, month models.Month, act string) error {
	category, err := categoryByName(row.Category, act)
	if err != nil {
		return err
	}

	periodName := row.Period
	if periodName == "" {
		periodName = "Fixed/1st Period"
	}

	period, err := periodByName(periodName, act)
	if err != nil {
		return err
	}

	expense := models.Expense{
		Name:       row.Name,
		CategoryID: category.ID,
		PeriodID:   period.ID,
		Budget:     row.Budget,
		Cost:       row.Cost,
		Notes:      row.Notes,
		MonthID:    month.ID,
	}
	expense.SetActor(act)

	return models.DB.Create(&expense).Error
}

func categoryByName(name, act string) (models.Category, error) {
	var category models.Category
	err := models.DB.Where("name = ?", name).First(&category).Error
	if err == nil {
		return category, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Category{}, err
	}

	category = models.Category{Name: name}
	category.SetActor(act)

	err = models.DB.Create(&category).Error
	return category, err
}

func periodByName(name, act string) (models.Period, error) {
	var period models.Period
	err := models.DB.Where("name = ?", name).First(&period).Error
	if err == nil {
		return period, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return models.Period{}, err
	}

	period = models.Period{Name: name}
	period.SetActor(act)

	err = models.DB.Create(&period).Error
	return period, err
}
