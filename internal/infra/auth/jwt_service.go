// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"croptrade/config"
	"croptrade/internal/domain/service"
)

const (
	tokenTypeAccess        = "access"
	tokenTypeRefresh       = "refresh"
	tokenTypePasswordReset = "password_reset"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh and reset tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	resetTTL      time.Duration // Time-to-live for password reset tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     time.Minute * 15,
		refreshTTL:    time.Hour * 24 * 7,
		resetTTL:      time.Minute * 30,
	}, nil
}

// GenerateTokens creates a new access token and refresh token for a given user and roles.
func (s *jwtService) GenerateTokens(userID uuid.UUID, roles []string) (accessToken string, refreshToken string, err error) {
	accessToken, err = s.generateToken(userID, roles, s.accessTTL, s.accessSecret, tokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = s.generateToken(userID, nil, s.refreshTTL, s.refreshSecret, tokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateAccessToken checks the validity of an access token string.
func (s *jwtService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, tokenTypeAccess)
}

// ValidateRefreshToken checks the validity of a refresh token string.
func (s *jwtService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, tokenTypeRefresh)
}

// GeneratePasswordResetToken creates a short-lived token for password recovery.
func (s *jwtService) GeneratePasswordResetToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, nil, s.resetTTL, s.refreshSecret, tokenTypePasswordReset)
}

// ValidatePasswordResetToken checks the validity of a password reset token.
func (s *jwtService) ValidatePasswordResetToken(tokenString string) (*service.Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, tokenTypePasswordReset)
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token.
func (s *jwtService) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}

// GetRefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) GetRefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, roles []string, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),         // Subject (who the token is for)
		"iat":  now.Unix(),              // Issued At
		"exp":  now.Add(ttl).Unix(),     // Expiration Time
		"type": tokenType,               // Type of token
	}
	// Only add roles to the access token for stateless authorization.
	if roles != nil {
		claims["roles"] = roles
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// validateToken parses the token, checks the signature and the declared type,
// and maps the claims into the domain Claims shape.
func (s *jwtService) validateToken(tokenString, secret, wantType string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	tokenType, _ := mapClaims["type"].(string)
	if tokenType != wantType {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	var roles []string
	if rawRoles, ok := mapClaims["roles"].([]any); ok {
		for _, r := range rawRoles {
			if role, ok := r.(string); ok {
				roles = append(roles, role)
			}
		}
	}

	return &service.Claims{
		UserID: userID,
		Roles:  roles,
		Type:   tokenType,
	}, nil
}
