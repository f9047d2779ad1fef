package v1

import (
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"
)

// RegisterIncomeRoutes registers the routes for incomes with the RouterGroup
// that is passed.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsIncomeList)
		r.GET("", GetIncomes)
		r.POST("", CreateIncome)
	}

	{
		r.OPTIONS("/:id", OptionsIncomeDetail)
		r.GET("/:id", GetIncome)
		r.PUT("/:id", UpdateIncome)
		r.DELETE("/:id", DeleteIncome)
	}
}

func OptionsIncomeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsIncomeDetail(c *gin.Context) {
	if _, ok := incomeFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

func incomeFromURI(c *gin.Context) (models.Income, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Income{}, false
	}

	var income models.Income
	err = models.DB.Joins("IncomeType").Joins("Period").First(&income, "incomes.id = ?", uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Income{}, false
	}

	return income, true
}

func CreateIncome(c *gin.Context) {
	var editable IncomeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !monthGate(c, editable.MonthID, "add income") {
		return
	}

	income := editable.model()
	income.SetActor(actor(c))

	err = models.DB.Create(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Joins("IncomeType").Joins("Period").First(&income, "incomes.id = ?", income.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusCreated, newIncomeResponse(income))
}

// GetIncomes returns all incomes, filtered by the period, income_type_id and
// month_id query parameters.
func GetIncomes(c *gin.Context) {
	var query struct {
		Period       string `form:"period"`
		IncomeTypeID uint   `form:"income_type_id"`
		MonthID      uint   `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	incomes, err := models.Incomes(models.DB, models.IncomeFilter{
		Period:       query.Period,
		IncomeTypeID: query.IncomeTypeID,
		MonthID:      query.MonthID,
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if query.IncomeTypeID != 0 {
		filtered := incomes[:0]
		for _, income := range incomes {
			if income.IncomeTypeID == query.IncomeTypeID {
				filtered = append(filtered, income)
			}
		}
		incomes = filtered
	}

	c.JSON(http.StatusOK, newIncomeResponses(incomes))
}

func GetIncome(c *gin.Context) {
	income, ok := incomeFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, newIncomeResponse(income))
}

func UpdateIncome(c *gin.Context) {
	income, ok := incomeFromURI(c)
	if !ok {
		return
	}

	if !monthGate(c, income.MonthID, "update income") {
		return
	}

	var update IncomeUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if update.MonthID != nil && *update.MonthID != income.MonthID {
		if !monthGate(c, *update.MonthID, "update income") {
			return
		}

		income.MonthID = *update.MonthID
	}

	if update.IncomeTypeID != nil {
		income.IncomeTypeID = *update.IncomeTypeID
	}

	if update.PeriodID != nil {
		income.PeriodID = *update.PeriodID
	}

	if update.Budget != nil {
		income.Budget = *update.Budget
	}

	if update.Amount != nil {
		income.Amount = *update.Amount
	}

	income.SetActor(actor(c))

	// The loaded IncomeType and Period still reference the old rows, only
	// the id fields are authoritative here.
	err = models.DB.Omit(clause.Associations).Save(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Joins("IncomeType").Joins("Period").First(&income, "incomes.id = ?", income.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, newIncomeResponse(income))
}

func DeleteIncome(c *gin.Context) {
	income, ok := incomeFromURI(c)
	if !ok {
		return
	}

	if !monthGate(c, income.MonthID, "delete income") {
		return
	}

	err := models.DB.Delete(&income).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Income deleted successfully"})
}
