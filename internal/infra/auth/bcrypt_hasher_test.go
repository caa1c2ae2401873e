package auth

import (
	"testing"

	domainerrors "croptrade/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	strongPassword := "StrongSecret123!"
	hash, err := hasher.Hash(strongPassword)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, strongPassword, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(strongPassword, hash))
}

func TestBcryptHasher_HashWithWeakPassword(t *testing.T) {
	hasher := NewBcryptHasher()

	weakPasswords := []string{
		"123",          // Too short
		"password",     // Forbidden word
		"SECRETWORD12", // No lowercase
		"secretword12", // No uppercase
		"SecretWordAB", // No numbers
		"SecretWord12", // No special characters
	}

	for _, weakPassword := range weakPasswords {
		_, err := hasher.Hash(weakPassword)
		assert.Error(t, err, "Expected error for weak password: %s", weakPassword)
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher()
	password := "StrongSecret123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongSecret123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	validPasswords := []string{
		"StrongSecret123!",
		"MySecure@Word1",
		"Complex#Secret9",
		"Valid$Phrase2024",
	}

	for _, password := range validPasswords {
		err := hasher.ValidatePasswordStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"123", "must be at least 8 characters long"},
		{"SECRETWORD12!", "must contain at least one lowercase letter"},
		{"secretword12!", "must contain at least one uppercase letter"},
		{"SecretWordAB!", "must contain at least one number"},
		{"SecretWord123", "must contain at least one special character"},
		{"Password123!", "contains forbidden words"},
		{"MyAdmin123!", "contains forbidden words"},
	}

	for _, tc := range testCases {
		err := hasher.ValidatePasswordStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr, "Error message should contain: %s", tc.expectedErr)
	}
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	password := "StrongSecret123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	// Verify the hash uses the correct cost
	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, customCost, cost)

	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_EdgeCases(t *testing.T) {
	hasher := NewBcryptHasher()

	// Empty password
	err := hasher.ValidatePasswordStrength("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must be at least 8 characters long")

	// Forbidden word buried inside an otherwise strong password
	err = hasher.ValidatePasswordStrength("VeryLongPassword123!")
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordForbiddenWords))

	// Unicode characters are fine
	err = hasher.ValidatePasswordStrength("Wässphräse123!")
	assert.NoError(t, err)

	// Only special characters fails the letter checks
	err = hasher.ValidatePasswordStrength("!@#$%^&*()")
	assert.Error(t, err)
}
