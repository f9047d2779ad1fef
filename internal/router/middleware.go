package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/appz-budget/backend/internal/auth"
	"github.com/appz-budget/backend/internal/config"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

var (
	errAPIKeyUnconfigured = errors.New("the server has no API key configured")
	errAPIKeyInvalid      = errors.New("invalid or missing API key")
	errAdminRequired      = errors.New("admin access required")
)

// APIKey verifies the X-API-Key header on every request.
func APIKey(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIKey == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": errAPIKeyUnconfigured.Error()})
			return
		}

		if c.GetHeader("X-API-Key") != cfg.APIKey {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": errAPIKeyInvalid.Error()})
			return
		}

		c.Next()
	}
}

// ClientInfo logs the X-Client-Info header clients send to identify
// themselves.
func ClientInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		info := c.GetHeader("X-Client-Info")
		if info != "" {
			log.Debug().
				Str("request-id", requestid.Get(c)).
				Str("client", info).
				Msg("client info")
		}

		c.Next()
	}
}

// AuthRequired verifies the bearer token and loads the user it belongs to.
// The user's id, display name and admin flag are stored on the context for
// the handlers.
func AuthRequired(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrTokenInvalid.Error()})
			return
		}

		claims, err := auth.ParseToken(cfg.JWTSecret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrTokenInvalid.Error()})
			return
		}

		var user models.User
		err = models.DB.First(&user, claims.UserID).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": auth.ErrTokenInvalid.Error()})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": models.ErrAccountInactive.Error()})
			return
		}

		c.Set("userID", user.ID)
		c.Set("userName", user.DisplayName())
		c.Set("isAdmin", user.IsAdmin)

		c.Next()
	}
}

// AdminRequired rejects requests from users without the admin flag. It has
// to run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool("isAdmin") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": errAdminRequired.Error()})
			return
		}

		c.Next()
	}
}
