package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MobileHandler holds dependencies for mobile companion handlers.
type MobileHandler struct {
	mobile usecase.MobileUsecase
}

// NewMobileHandler is the constructor for MobileHandler, injected by Fx.
func NewMobileHandler(mobile usecase.MobileUsecase) *MobileHandler {
	return &MobileHandler{mobile: mobile}
}

// Capabilities exercises the camera, geolocation and push bridges.
func (h *MobileHandler) Capabilities(c echo.Context) error {
	output, err := h.mobile.Capabilities(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Device capabilities retrieved")
}

type registerDeviceRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	DeviceID string `json:"device_id" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=ios android web"`
}

// RegisterDevice stores a device push token for the caller.
func (h *MobileHandler) RegisterDevice(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req registerDeviceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.mobile.RegisterDevice(c.Request().Context(), userID, &usecase.RegisterDeviceInput{
		FCMToken: req.FCMToken,
		DeviceID: req.DeviceID,
		Platform: req.Platform,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"message": "Device registered"}, "Device registered successfully")
}

type priceAlertRequest struct {
	CropName string  `json:"crop_name" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// SendPriceAlert pushes a crop price alert to the caller's devices.
func (h *MobileHandler) SendPriceAlert(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req priceAlertRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid price alert input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.mobile.SendPriceAlert(c.Request().Context(), userID, req.CropName, req.Price); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Price alert sent"}, "Price alert sent")
}

type weatherWarningRequest struct {
	Warning string `json:"warning" validate:"required"`
}

// SendWeatherWarning pushes a weather warning to the caller's devices.
func (h *MobileHandler) SendWeatherWarning(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req weatherWarningRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid weather warning input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.mobile.SendWeatherWarning(c.Request().Context(), userID, req.Warning); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Weather warning sent"}, "Weather warning sent")
}
