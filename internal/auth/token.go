// Package auth creates and verifies the JWT bearer tokens used for login
// sessions.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long a login session stays valid.
const TokenLifetime = 30 * 24 * time.Hour

var ErrTokenInvalid = errors.New("token is invalid or expired")

// Claims carries the user identity encoded in a session token.
type Claims struct {
	UserID uint
	Email  string
}

// CreateToken issues a signed session token for the user.
func CreateToken(secret string, userID uint, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"sub":     email,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenLifetime).Unix(),
	})

	return token.SignedString([]byte(secret))
}

// ParseToken verifies the signature and expiry of a session token and
// returns the claims it carries.
func ParseToken(secret, tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	email, _ := claims["sub"].(string)

	return Claims{UserID: uint(userID), Email: email}, nil
}
