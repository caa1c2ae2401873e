package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Roles  []string
	Type   string // "access", "refresh" or "password_reset"
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks the validity of an access token string.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks the validity of a refresh token string.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// GeneratePasswordResetToken creates a short-lived token for password recovery.
	GeneratePasswordResetToken(userID uuid.UUID) (string, error)

	// ValidatePasswordResetToken checks the validity of a password reset token.
	ValidatePasswordResetToken(tokenString string) (*Claims, error)

	// HashToken returns the hex-encoded SHA-256 digest of a raw token,
	// the form in which refresh tokens are stored and looked up.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured duration for refresh tokens.
	GetRefreshTokenDuration() time.Duration
}
