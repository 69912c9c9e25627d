package models

import "github.com/golang-jwt/jwt/v5"

// RegisterRequest creates an account plus its default student profile.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest holds credentials for the token endpoints.
type TokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse returns the issued token pair plus user metadata.
type TokenResponse struct {
	Access   string `json:"access"`
	Refresh  string `json:"refresh"`
	Role     Role   `json:"role"`
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
	IsStaff  bool   `json:"is_staff"`
}

// TokenRefreshRequest exchanges a refresh token for a new access token.
type TokenRefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenRefreshResponse carries the new access token.
type TokenRefreshResponse struct {
	Access string `json:"access"`
}

// JWTClaims is the JWT payload for access tokens.
type JWTClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	IsStaff  bool   `json:"is_staff"`
	jwt.RegisteredClaims
}
