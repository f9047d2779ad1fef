package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an account that can log in to the API.
type User struct {
	DefaultModel
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	IsActive     bool   `json:"is_active"`
	IsAdmin      bool   `json:"is_admin"`
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullName = strings.TrimSpace(u.FullName)

	return nil
}

// DisplayName returns the full name of the user, falling back to the email
// address when no name is set.
func (u User) DisplayName() string {
	if u.FullName == "" {
		return u.Email
	}

	return u.FullName
}

// SetPassword hashes the password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the password against the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Authenticate verifies the credentials and returns the matching user.
// Unknown email and wrong password are indistinguishable to the caller.
func Authenticate(db *gorm.DB, email, password string) (User, error) {
	var user User
	err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrInvalidCredentials
		}

		return User{}, err
	}

	if !user.IsActive {
		return User{}, ErrAccountInactive
	}

	if !user.CheckPassword(password) {
		return User{}, ErrInvalidCredentials
	}

	return user, nil
}

// PasswordResetToken is a single-use token that allows setting a new
// password without knowing the current one.
type PasswordResetToken struct {
	DefaultModel
	Token     string    `json:"token" gorm:"uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"index"`
	User      User      `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// NewPasswordResetToken creates a reset token for the user, valid for 24
// hours.
func NewPasswordResetToken(db *gorm.DB, user User) (PasswordResetToken, error) {
	token := PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(24 * time.Hour),
	}

	err := db.Create(&token).Error
	return token, err
}

// RedeemResetToken sets a new password for the user the token belongs to and
// marks the token as used. Expired and already used tokens are rejected.
func RedeemResetToken(db *gorm.DB, token, password string) error {
	var reset PasswordResetToken
	err := db.Where("token = ?", token).First(&reset).Error
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResetTokenInvalid
		}

		return err
	}

	if reset.Used {
		return ErrResetTokenUsed
	}

	if time.Now().UTC().After(reset.ExpiresAt) {
		return ErrResetTokenExpired
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var user User
		err := tx.First(&user, reset.UserID).Error
		if err != nil {
			return err
		}

		err = user.SetPassword(password)
		if err != nil {
			return err
		}

		err = tx.Save(&user).Error
		if err != nil {
			return err
		}

		reset.Used = true
		return tx.Save(&reset).Error
	})
}
