package v1

import (
	"fmt"
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterMonthRoutes registers the routes for months with the RouterGroup
// that is passed.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsMonthList)
		r.GET("", GetMonths)
		r.POST("", CreateMonth)
	}

	r.GET("/current", GetCurrentMonth)
	r.GET("/year/:year/month/:month", GetMonthByYearMonth)

	{
		r.OPTIONS("/:id", OptionsMonthDetail)
		r.GET("/:id", GetMonth)
		r.PUT("/:id", UpdateMonth)
		r.DELETE("/:id", DeleteMonth)
	}

	r.POST("/:id/close", CloseMonth)
	r.POST("/:id/open", OpenMonth)
}

func OptionsMonthList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsMonthDetail(c *gin.Context) {
	if _, ok := monthFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// monthFromURI loads the month referenced by the id URI parameter. On
// failure the error response has already been written.
func monthFromURI(c *gin.Context) (models.Month, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Month{}, false
	}

	var month models.Month
	err = models.DB.First(&month, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Month{}, false
	}

	return month, true
}

// CreateMonth creates a new month for a (year, month) pair.
func CreateMonth(c *gin.Context) {
	var editable MonthEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	month := models.Month{
		Year:  editable.Year,
		Month: editable.Month,
	}
	month.SetActor(actor(c))

	err = models.DB.Create(&month).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusCreated, month)
}

// GetMonths returns all months, most recent first.
func GetMonths(c *gin.Context) {
	months, err := models.Months(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, months)
}

// GetCurrentMonth returns the month containing today, falling back to the
// most recent month.
func GetCurrentMonth(c *gin.Context) {
	month, err := models.CurrentMonth(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, month)
}

func GetMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, month)
}

func GetMonthByYearMonth(c *gin.Context) {
	var uri URIYearMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var month models.Month
	err = models.DB.Where(&models.Month{Year: uri.Year, Month: uri.Month}).First(&month).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, month)
}

// UpdateMonth updates a month. Changing year or month regenerates the name
// and the start and end dates.
func UpdateMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	var update MonthUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if update.Year != nil {
		month.Year = *update.Year
	}

	if update.Month != nil {
		month.Month = *update.Month
	}

	month.SetActor(actor(c))

	err = models.DB.Save(&month).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, month)
}

// DeleteMonth deletes a month together with its expenses and incomes.
func DeleteMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	err := month.Delete(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Month deleted successfully"})
}

// CloseMonth closes a month so that its expenses and incomes can no longer
// be changed.
func CloseMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	err := month.Close(models.DB, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, MonthCloseResponse{
		ID:       month.ID,
		Name:     month.Name,
		IsClosed: month.IsClosed,
		ClosedAt: month.ClosedAt,
		ClosedBy: month.ClosedBy,
		Message:  fmt.Sprintf("Month '%s' has been closed", month.Name),
	})
}

// OpenMonth reopens a closed month.
func OpenMonth(c *gin.Context) {
	month, ok := monthFromURI(c)
	if !ok {
		return
	}

	err := month.Open(models.DB, actor(c))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, MonthCloseResponse{
		ID:       month.ID,
		Name:     month.Name,
		IsClosed: month.IsClosed,
		ClosedAt: month.ClosedAt,
		ClosedBy: month.ClosedBy,
		Message:  fmt.Sprintf("Month '%s' has been reopened", month.Name),
	})
}
