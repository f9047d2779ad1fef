// Package healthz provides the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// Options returns an empty response with the "allow" header set to the
// allowed HTTP verbs.
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// Get returns the application health. When the database does not answer a
// ping, the application is unhealthy.
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": models.ErrGeneral.Error()})
		return
	}

	err = sqlDB.Ping()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": models.ErrGeneral.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
