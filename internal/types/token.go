package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims represents the claims in an issued JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"user_id"`
}
