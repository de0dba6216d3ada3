package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims is the JWT payload for the single shared admin identity.
type AdminClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RoleAdmin is the only role the system knows.
const RoleAdmin = "admin"

// LoginRequest carries the shared admin password. Username is optional and
// only recorded for the audit trail on uploads.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}
