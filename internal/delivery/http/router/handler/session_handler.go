package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for account and session handlers.
type SessionHandler struct {
	sessions   usecase.SessionUsecase
	onboarding usecase.OnboardingUsecase
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(sessions usecase.SessionUsecase, onboarding usecase.OnboardingUsecase) *SessionHandler {
	return &SessionHandler{
		sessions:   sessions,
		onboarding: onboarding,
	}
}

type signUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUp handles account registration.
func (h *SessionHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign up input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.sessions.SignUp(c.Request().Context(), &usecase.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "Account created successfully")
}

type signInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signInResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

// SignIn handles the sign in request.
func (h *SessionHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign in input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.sessions.SignIn(c.Request().Context(), &usecase.SignInInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, signInResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		UserID:       output.User.ID.String(),
		Email:        output.User.Email,
	}, "Signed in successfully")
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshToken handles the token refresh request.
func (h *SessionHandler) RefreshToken(c echo.Context) error {
	var req refreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.sessions.RefreshToken(c.Request().Context(), &usecase.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"access_token": output.AccessToken,
	}, "Token refreshed successfully")
}

type signOutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SignOut ends the session and drops the user's onboarding machine so the
// next sign-in starts from a clean resolution.
func (h *SessionHandler) SignOut(c echo.Context) error {
	var req signOutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign out input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.sessions.SignOut(c.Request().Context(), &usecase.SignOutInput{
		RefreshToken: req.RefreshToken,
	}); err != nil {
		return errors.WithStack(err)
	}

	if userID, ok := currentUserID(c); ok {
		h.onboarding.Release(userID)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully signed out"}, "Sign out successful")
}

type requestPasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestPasswordReset issues a reset token. The response is identical
// whether or not the email exists.
func (h *SessionHandler) RequestPasswordReset(c echo.Context) error {
	var req requestPasswordResetRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.sessions.RequestPasswordReset(c.Request().Context(), &usecase.RequestPasswordResetInput{
		Email: req.Email,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"message": "If that account exists, a reset link has been sent",
	}, "Password reset requested")
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ResetPassword applies a password reset token.
func (h *SessionHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.sessions.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password updated"}, "Password reset successful")
}
