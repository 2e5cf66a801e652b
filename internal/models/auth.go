package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest creates a user or admin credential.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest holds credentials for authenticating an account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and account info.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	IssuedAt    time.Time   `json:"issued_at"`
	Account     AccountInfo `json:"account"`
}

// JWTClaims is the access token payload. Kind distinguishes user tokens from
// admin tokens when guarding admin routes.
type JWTClaims struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Kind     AccountKind `json:"kind"`
	jwt.RegisteredClaims
}
