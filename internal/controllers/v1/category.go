package v1

import (
	"fmt"
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", OptionsCategoryList)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	r.GET("/summary", GetCategorySummary)

	{
		r.OPTIONS("/:id", OptionsCategoryDetail)
		r.GET("/:id", GetCategory)
		r.PUT("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

func OptionsCategoryList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

func OptionsCategoryDetail(c *gin.Context) {
	if _, ok := categoryFromURI(c); !ok {
		return
	}

	httputil.OptionsGetPutDelete(c)
}

func categoryFromURI(c *gin.Context) (models.Category, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Category{}, false
	}

	var category models.Category
	err = models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.Category{}, false
	}

	return category, true
}

func CreateCategory(c *gin.Context) {
	var editable CategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	category := editable.model()
	category.SetActor(actor(c))

	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, category)
}

func GetCategories(c *gin.Context) {
	categories, err := models.Categories(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, categories)
}

func GetCategory(c *gin.Context) {
	category, ok := categoryFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, category)
}

func UpdateCategory(c *gin.Context) {
	category, ok := categoryFromURI(c)
	if !ok {
		return
	}

	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	category.Name = editable.Name
	if editable.Color != "" {
		category.Color = editable.Color
	}

	category.SetActor(actor(c))

	err = models.DB.Save(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.InvalidateSummaries(c.Request.Context())
	c.JSON(http.StatusOK, category)
}

// DeleteCategory deletes a category. Categories still referenced by expenses
// cannot be deleted.
func DeleteCategory(c *gin.Context) {
	category, ok := categoryFromURI(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// GetCategorySummary returns the budget and actual cost per category,
// optionally scoped to one month.
func GetCategorySummary(c *gin.Context) {
	var query struct {
		MonthID uint `form:"month_id"`
	}

	if err := c.ShouldBind(&query); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	key := fmt.Sprintf("summary:categories:%d", query.MonthID)

	var summaries []models.CategorySummary
	if store.Get(c.Request.Context(), key, &summaries) {
		c.JSON(http.StatusOK, summaries)
		return
	}

	summaries, err := models.CategorySummaries(models.DB, query.MonthID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	store.Set(c.Request.Context(), key, summaries)
	c.JSON(http.StatusOK, summaries)
}
