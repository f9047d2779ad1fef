package v1

import (
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterPeriodRoutes registers the routes for periods with the RouterGroup
// that is passed.
func RegisterPeriodRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsPeriodList)
		r.GET("", GetPeriods)
		r.POST("", CreatePeriod)
	}

	{
		r.OPTIONS("/:id", OptionsPeriodDetail)
		r.GET("/:id", GetPeriod)
		r.PUT("/:id", UpdatePeriod)
		r.DELETE("/:id", DeletePeriod)
	}
}

func OptionsPeriodList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsPeriodDetail(c *gin.Context) {
	if _, ok := periodFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

func periodFromURI(c *gin.Context) (models.Period, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Period{}, false
	}

	var period models.Period
	err = models.DB.First(&period, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Period{}, false
	}

	return period, true
}

func CreatePeriod(c *gin.Context) {
	var editable PeriodEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	period := editable.model()
	period.SetActor(actor(c))

	err = models.DB.Create(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, period)
}

func GetPeriods(c *gin.Context) {
	periods, err := models.Periods(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, periods)
}

func GetPeriod(c *gin.Context) {
	period, ok := periodFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, period)
}

func UpdatePeriod(c *gin.Context) {
	period, ok := periodFromURI(c)
	if !ok {
		return
	}

	var editable PeriodEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	period.Name = editable.Name
	if editable.Color != "" {
		period.Color = editable.Color
	}

	period.SetActor(actor(c))

	err = models.DB.Save(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, period)
}

// DeletePeriod deletes a period. Periods still referenced by expenses or
// incomes cannot be deleted.
func DeletePeriod(c *gin.Context) {
	period, ok := periodFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&period).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Period deleted successfully"})
}
