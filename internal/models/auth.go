package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// LoginRequest holds credentials for authenticating a university account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and account info.
type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresIn   int64          `json:"expires_in"`
	University  UniversityInfo `json:"university"`
	IssuedAt    time.Time      `json:"issued_at"`
}

// RegisterRequest creates a new university account.
type RegisterRequest struct {
	Name          string `json:"name" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	ContactPerson string `json:"contact_person" validate:"required"`
	Phone         string `json:"phone"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UniversityID string `json:"university_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}
