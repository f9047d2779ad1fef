// Package router sets up the gin engine, its middlewares and all routes.
package router

import (
	"strings"

	"github.com/appz-budget/backend/internal/config"
	"github.com/appz-budget/backend/internal/controllers/healthz"
	v1 "github.com/appz-budget/backend/internal/controllers/v1"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Router controls the routes for the API.
func Router(cfg config.Config) (*gin.Engine, error) {
	// Set up the router and middlewares
	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, logger zerolog.Logger) zerolog.Logger {
			return logger.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Str("client", c.GetHeader("X-Client-Info")).
				Logger()
		})))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Fields(cfg.AllowOrigins),
		AllowMethods:     []string{"OPTIONS", "GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-API-Key", "Authorization", "X-Client-Info"},
		AllowCredentials: true,
	}))

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	pprof.Register(r)

	healthz.RegisterRoutes(r.Group("/healthz"))

	api := r.Group("/api/v1")

	// The download URL carries its own signature, clients open it without
	// any headers set.
	v1.RegisterBackupDownloadRoute(api)

	api.Use(APIKey(cfg), ClientInfo())

	authRequired := AuthRequired(cfg)
	adminRequired := AdminRequired()

	v1.RegisterAuthRoutes(api, authRequired, adminRequired)

	authed := api.Group("", authRequired)
	{
		v1.RegisterMonthRoutes(authed.Group("/months"))
		v1.RegisterExpenseRoutes(authed.Group("/expenses"))
		v1.RegisterIncomeRoutes(authed.Group("/incomes"))
		v1.RegisterCategoryRoutes(authed.Group("/categories"))
		v1.RegisterPeriodRoutes(authed.Group("/periods"))
		v1.RegisterIncomeTypeRoutes(authed.Group("/income-types"))
		v1.RegisterSummaryRoutes(authed.Group("/summary"))
		v1.RegisterImportRoutes(authed.Group("/import"))
	}

	v1.RegisterBackupRoutes(api.Group("/backups", authRequired, adminRequired))

	log.Info().Msg("backend startup complete")

	return r, nil
}
