package v1

// UserRegister is the body of the register endpoint.
type UserRegister struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

// UserLogin is the body of the login endpoint.
type UserLogin struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned after a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      uint   `json:"user_id"`
	Email       string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPasswordResponse always reports success so that the endpoint does
// not reveal whether an account exists. The token is only included when no
// mail could be sent.
type ForgotPasswordResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"email_sent"`
	Token     string `json:"token,omitempty"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserCreate is the body of the admin user creation endpoint.
type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
	IsActive *bool  `json:"is_active"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserUpdate is a partial update of a user by an admin.
type UserUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	IsActive *bool   `json:"is_active"`
	IsAdmin  *bool   `json:"is_admin"`
}
