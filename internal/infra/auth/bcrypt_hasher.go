// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	domainerrors "croptrade/internal/domain/errors"
	"croptrade/internal/domain/service"
	"croptrade/internal/errors"
)

const minPasswordLength = 8

// defaultForbiddenWords are substrings a password may never contain,
// case-insensitively.
var defaultForbiddenWords = []string{"password", "admin", "croptrade", "12345678", "qwerty"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost           int
	forbiddenWords []string
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher() service.PasswordHasher {
	return NewBcryptHasherWithCost(bcrypt.DefaultCost)
}

// NewBcryptHasherWithCost creates a hasher with an explicit bcrypt cost,
// mainly so tests can use a cheap cost.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return &bcryptHasher{
		cost:           cost,
		forbiddenWords: defaultForbiddenWords,
	}
}

// Hash validates the password against the strength policy and generates a
// salted hash using bcrypt. bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the password against the strength policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < minPasswordLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must be at least 8 characters long")
	}
	if !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one lowercase letter")
	}
	if !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one uppercase letter")
	}
	if !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one number")
	}
	if !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("password must contain at least one special character")
	}
	if h.containsForbiddenWords(password, h.forbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("password contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (h *bcryptHasher) containsForbiddenWords(password string, words []string) bool {
	lowered := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
