// Package v1 implements the handlers for the v1 API.
package v1

import (
	"github.com/appz-budget/backend/internal/cache"
	"github.com/appz-budget/backend/internal/config"
	"github.com/appz-budget/backend/internal/mailer"
	"github.com/gin-gonic/gin"
)

var (
	cfg   config.Config
	store *cache.Cache
	mail  *mailer.Mailer
)

// Configure sets the configuration, cache and mailer used by the handlers.
// Must be called before any route is served.
func Configure(c config.Config, s *cache.Cache) {
	cfg = c
	store = s
	mail = mailer.New(c)
}

// actor returns the display name of the authenticated user for the audit
// fields. Empty when the request is not authenticated.
func actor(c *gin.Context) string {
	return c.GetString("userName")
}
