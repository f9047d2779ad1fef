package v1

import (
	"errors"
	"net/http"
	"strings"

	"github.com/appz-budget/backend/internal/auth"
	"github.com/appz-budget/backend/internal/httputil"
	"github.com/appz-budget/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RegisterAuthRoutes registers the authentication and user administration
// routes. The login and password reset endpoints are public, everything else
// needs a session, user administration additionally needs an admin.
func RegisterAuthRoutes(r *gin.RouterGroup, authRequired, adminRequired gin.HandlerFunc) {
	r.POST("/auth/register", Register)
	r.POST("/auth/login", Login)
	r.POST("/auth/forgot-password", ForgotPassword)
	r.POST("/auth/reset-password", ResetPassword)

	authed := r.Group("/auth", authRequired)
	authed.GET("/me", GetMe)
	authed.POST("/change-password", ChangePassword)

	admin := r.Group("/auth/users", authRequired, adminRequired)
	{
		admin.GET("", GetUsers)
		admin.POST("", CreateUser)
		admin.GET("/:id", GetUser)
		admin.PUT("/:id", UpdateUser)
		admin.DELETE("/:id", DeleteUser)
	}
}

// Register creates a new account. The account can log in right away.
func Register(c *gin.Context) {
	var request UserRegister

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user := models.User{
		Email:    request.Email,
		FullName: request.FullName,
		IsActive: true,
	}

	err = user.SetPassword(request.Password)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user.SetActor(user.DisplayName())

	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies the credentials and returns a session token.
func Login(c *gin.Context) {
	var credentials UserLogin

	err := httputil.BindData(c, &credentials)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user, err := models.Authenticate(models.DB, credentials.Email, credentials.Password)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	token, err := auth.CreateToken(cfg.JWTSecret, user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{
			Error: models.ErrGeneral.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserID:      user.ID,
		Email:       user.Email,
	})
}

// ForgotPassword issues a password reset token. The response is the same
// whether or not the account exists. The token is mailed when SMTP is
// configured and otherwise returned in the body.
func ForgotPassword(c *gin.Context) {
	var request ForgotPasswordRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	generic := ForgotPasswordResponse{
		Message: "If the email exists, a password reset link has been sent",
	}

	var user models.User
	err = models.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(request.Email))).First(&user).Error
	if err != nil {
		c.JSON(http.StatusOK, generic)
		return
	}

	token, err := models.NewPasswordResetToken(models.DB, user)
	if err != nil {
		c.JSON(http.StatusOK, generic)
		return
	}

	if mail.Enabled() {
		err := mail.SendPasswordReset(user.Email, token.Token)
		if err == nil {
			c.JSON(http.StatusOK, ForgotPasswordResponse{
				Message:   "Password reset email sent",
				EmailSent: true,
			})
			return
		}

		log.Error().Err(err).Msg("could not send password reset mail")
	}

	c.JSON(http.StatusOK, ForgotPasswordResponse{
		Message: "Password reset token generated",
		Token:   token.Token,
	})
}

// ResetPassword sets a new password using a reset token.
func ResetPassword(c *gin.Context) {
	var request ResetPasswordRequest

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.RedeemResetToken(models.DB, request.Token, request.NewPassword)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user)
}

// ChangePassword sets a new password for the authenticated user after
// verifying the current one.
func ChangePassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var request ChangePasswordRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if !user.CheckPassword(request.CurrentPassword) {
		c.JSON(http.StatusBadRequest, httpError{
			Error: models.ErrWrongPassword.Error(),
		})
		return
	}

	err = user.SetPassword(request.NewPassword)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user.SetActor(user.DisplayName())

	err = models.DB.Save(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// currentUser loads the user the session token belongs to. On failure the
// error response has already been written.
func currentUser(c *gin.Context) (models.User, bool) {
	var user models.User
	err := models.DB.First(&user, c.GetUint("userID")).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: auth.ErrTokenInvalid.Error(),
		})
		return models.User{}, false
	}

	return user, true
}

// GetUsers returns all users, ordered by email.
func GetUsers(c *gin.Context) {
	var users []models.User
	err := models.DB.Order("email").Find(&users).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser creates a user with the given flags. Admin only.
func CreateUser(c *gin.Context) {
	var request UserCreate

	err := httputil.BindData(c, &request)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user := models.User{
		Email:    request.Email,
		FullName: request.FullName,
		IsActive: true,
		IsAdmin:  request.IsAdmin,
	}

	if request.IsActive != nil {
		user.IsActive = *request.IsActive
	}

	err = user.SetPassword(request.Password)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	user.SetActor(actor(c))

	err = models.DB.Create(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func userFromURI(c *gin.Context) (models.User, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.User{}, false
	}

	var user models.User
	err = models.DB.First(&user, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return models.User{}, false
	}

	return user, true
}

func GetUser(c *gin.Context) {
	user, ok := userFromURI(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates a user's email, name and flags. Admin only.
func UpdateUser(c *gin.Context) {
	user, ok := userFromURI(c)
	if !ok {
		return
	}

	var update UserUpdate
	err := httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	if update.Email != nil {
		user.Email = *update.Email
	}

	if update.FullName != nil {
		user.FullName = *update.FullName
	}

	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	if update.IsAdmin != nil {
		user.IsAdmin = *update.IsAdmin
	}

	user.SetActor(actor(c))

	err = models.DB.Model(&user).Select("Email", "FullName", "IsActive", "IsAdmin", "UpdatedBy").Updates(user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

var errDeleteSelf = errors.New("cannot delete your own account")

// DeleteUser deletes a user. Deleting the own account is rejected.
func DeleteUser(c *gin.Context) {
	user, ok := userFromURI(c)
	if !ok {
		return
	}

	if user.ID == c.GetUint("userID") {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errDeleteSelf.Error(),
		})
		return
	}

	err := models.DB.Delete(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
