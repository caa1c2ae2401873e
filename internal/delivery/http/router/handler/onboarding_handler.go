package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OnboardingHandler holds dependencies for onboarding handlers.
type OnboardingHandler struct {
	onboarding usecase.OnboardingUsecase
}

// NewOnboardingHandler is the constructor for OnboardingHandler, injected by Fx.
func NewOnboardingHandler(onboarding usecase.OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{onboarding: onboarding}
}

type onboardingStatusResponse struct {
	State string `json:"state"`
	Role  string `json:"role,omitempty"`
}

func toStatusResponse(output *usecase.OnboardingStatusOutput) onboardingStatusResponse {
	return onboardingStatusResponse{
		State: string(output.State),
		Role:  output.Role.String(),
	}
}

// Status reports where the user stands in onboarding.
func (h *OnboardingHandler) Status(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.onboarding.Status(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStatusResponse(output), "Onboarding status resolved")
}

type selectRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=farmer buyer transporter"`
}

// SelectRole assigns the chosen marketplace role.
func (h *OnboardingHandler) SelectRole(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req selectRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role selection input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.onboarding.SelectRole(c.Request().Context(), userID, &usecase.SelectRoleInput{
		Role: req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStatusResponse(output), "Role selected")
}

type registerVehicleRequest struct {
	VehicleType   string `json:"vehicle_type" validate:"required"`
	VehicleNumber string `json:"vehicle_number" validate:"required"`
	Capacity      string `json:"capacity" validate:"required"`
	ServiceArea   string `json:"service_area" validate:"required"`
}

// RegisterVehicle completes transporter setup with the vehicle form.
func (h *OnboardingHandler) RegisterVehicle(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req registerVehicleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid vehicle registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.onboarding.RegisterVehicle(c.Request().Context(), userID, &usecase.RegisterVehicleInput{
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
		Capacity:      req.Capacity,
		ServiceArea:   req.ServiceArea,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toStatusResponse(output), "Vehicle registered")
}
