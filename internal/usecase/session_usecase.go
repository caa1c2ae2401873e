// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"croptrade/internal/domain/entity"
)

// --- Input DTOs ---

// SignUpInput defines the data required to register a new account.
type SignUpInput struct {
	Email    string
	Password string
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string
	Password string
}

// SignOutInput carries the refresh token of the session being ended.
type SignOutInput struct {
	RefreshToken string
}

// RefreshTokenInput carries the refresh token used to mint a new access token.
type RefreshTokenInput struct {
	RefreshToken string
}

// RequestPasswordResetInput identifies the account asking for a reset link.
type RequestPasswordResetInput struct {
	Email string
}

// ResetPasswordInput carries a reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// SignUpOutput returns the newly created account's basic information.
type SignUpOutput struct {
	User *entity.User
}

// SignInOutput returns the generated tokens after a successful sign-in.
type SignInOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshTokenOutput returns the new access token.
type RefreshTokenOutput struct {
	AccessToken string
}

// SessionUsecase defines the interface for account and session operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type SessionUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*SignUpOutput, error)
	SignIn(ctx context.Context, input *SignInInput) (*SignInOutput, error)
	SignOut(ctx context.Context, input *SignOutInput) error
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	RequestPasswordReset(ctx context.Context, input *RequestPasswordResetInput) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
