package auth

import (
	"testing"
	"time"

	"croptrade/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	userID := uuid.New()
	roles := []string{"farmer"}

	accessToken, refreshToken, err := jwtService.GenerateTokens(userID, roles)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	// Validate access token
	accessClaims, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.NotNil(t, accessClaims)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, roles, accessClaims.Roles)
	assert.Equal(t, "access", accessClaims.Type)

	// Validate refresh token
	refreshClaims, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.NotNil(t, refreshClaims)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Nil(t, refreshClaims.Roles) // Refresh tokens don't have roles
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	accessToken, refreshToken, err := jwtService.GenerateTokens(uuid.New(), nil)
	assert.NoError(t, err)

	// An access token is not a refresh token, and vice versa.
	claims, err := jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_PasswordResetToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	userID := uuid.New()
	resetToken, err := jwtService.GeneratePasswordResetToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, resetToken)

	claims, err := jwtService.ValidatePasswordResetToken(resetToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "password_reset", claims.Type)

	// A reset token cannot be used as an access or refresh token.
	_, err = jwtService.ValidateAccessToken(resetToken)
	assert.Error(t, err)
	_, err = jwtService.ValidateRefreshToken(resetToken)
	assert.Error(t, err)
}

func TestJWTService_HashToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	first := jwtService.HashToken("some-raw-token")
	second := jwtService.HashToken("some-raw-token")
	other := jwtService.HashToken("another-raw-token")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_GetRefreshTokenDuration(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig())
	assert.NoError(t, err)

	assert.Equal(t, time.Hour*24*7, jwtService.GetRefreshTokenDuration())
}
