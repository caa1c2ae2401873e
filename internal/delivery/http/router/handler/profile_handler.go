package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	profiles usecase.ProfileUsecase
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profiles usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// GetProfile fetches the caller's profile, creating an empty one on first access.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	profile, err := h.profiles.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile retrieved successfully")
}

// UpdateProfile applies partial profile changes; absent fields stay untouched.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	profile, err := h.profiles.UpdateProfile(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Profile updated successfully")
}

// UploadAvatar stores the multipart avatar image and records its public URL.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Avatar file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	profile, err := h.profiles.UploadAvatar(c.Request().Context(), userID, &usecase.UploadAvatarInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "Avatar uploaded successfully")
}

// PaymentQR renders the caller's UPI payment QR code as a PNG image.
func (h *ProfileHandler) PaymentQR(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	png, err := h.profiles.PaymentQR(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
