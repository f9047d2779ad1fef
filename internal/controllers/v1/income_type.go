package v1

import (
	"fmt"
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterIncomeTypeRoutes registers the routes for income types with the
// RouterGroup that is passed.
func RegisterIncomeTypeRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsIncomeTypeList)
		r.GET("", GetIncomeTypes)
		r.POST("", CreateIncomeType)
	}

	r.GET("/summary", GetIncomeTypeSummary)

	{
		r.OPTIONS("/:id", OptionsIncomeTypeDetail)
		r.GET("/:id", GetIncomeType)
		r.PUT("/:id", UpdateIncomeType)
		r.DELETE("/:id", DeleteIncomeType)
	}
}

func OptionsIncomeTypeList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsIncomeTypeDetail(c *gin.Context) {
	if _, ok := incomeTypeFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

func incomeTypeFromURI(c *gin.Context) (models.IncomeType, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.IncomeType{}, false
	}

	var incomeType models.IncomeType
	err = models.DB.First(&incomeType, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.IncomeType{}, false
	}

	return incomeType, true
}

func CreateIncomeType(c *gin.Context) {
	var editable IncomeTypeEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	incomeType := editable.model()
	incomeType.SetActor(actor(c))

	err = models.DB.Create(&incomeType).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, incomeType)
}

func GetIncomeTypes(c *gin.Context) {
	incomeTypes, err := models.IncomeTypes(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, incomeTypes)
}

func GetIncomeType(c *gin.Context) {
	incomeType, ok := incomeTypeFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, incomeType)
}

func UpdateIncomeType(c *gin.Context) {
	incomeType, ok := incomeTypeFromURI(c)
	if !ok {
		return
	}

	var editable IncomeTypeEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	incomeType.Name = editable.Name
	if editable.Color != "" {
		incomeType.Color = editable.Color
	}

	incomeType.SetActor(actor(c))

	err = models.DB.Save(&incomeType).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, incomeType)
}

// DeleteIncomeType deletes an income type. Income types still referenced by
// incomes cannot be deleted.
func DeleteIncomeType(c *gin.Context) {
	incomeType, ok := incomeTypeFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&incomeType).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Income type deleted successfully"})
}

// GetIncomeTypeSummary returns the budget and actual amount per income type,
// optionally filtered by period name and month.
func GetIncomeTypeSummary(c *gin.Context) {
	var query struct {
		Period  string `form:"period"`
		MonthID uint   `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	key := fmt.Sprintf("summary:income-types:%s:%d", query.Period, query.MonthID)

	var summaries []models.IncomeTypeSummary
	if store.Get(c.Request.Context(), key, &summaries) {
		c.JSON(http.StatusOK, summaries)
		return
	}

	summaries, err := models.IncomeTypeSummaries(models.DB, query.Period, query.MonthID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.Set(c.Request.Context(), key, summaries)
	c.JSON(http.StatusOK, summaries)
}
