package handler

import (
	"net/http"

	"croptrade/internal/delivery/http/response"
	"croptrade/internal/domain/entity"
	"croptrade/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TransporterHandler holds dependencies for transporter dashboard handlers.
type TransporterHandler struct {
	transporters usecase.TransporterUsecase
}

// NewTransporterHandler is the constructor for TransporterHandler, injected by Fx.
func NewTransporterHandler(transporters usecase.TransporterUsecase) *TransporterHandler {
	return &TransporterHandler{transporters: transporters}
}

// Overview returns the transporter's record, assigned trips and the open
// pool of pending requests.
func (h *TransporterHandler) Overview(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.transporters.Overview(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Transporter overview retrieved")
}

// AcceptRequest claims a pending request for this transporter.
func (h *TransporterHandler) AcceptRequest(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	if err := h.transporters.AcceptRequest(c.Request().Context(), userID, requestID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": string(entity.TransportAccepted)}, "Request accepted")
}

type advanceRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted in_transit delivered"`
}

// AdvanceRequest moves an assigned request along the delivery chain.
func (h *TransporterHandler) AdvanceRequest(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid request ID")
	}

	var req advanceRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.transporters.AdvanceRequest(c.Request().Context(), userID, requestID, entity.TransportRequestStatus(req.Status)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": req.Status}, "Request status updated")
}

// ToggleAvailability flips whether the transporter accepts new work.
func (h *TransporterHandler) ToggleAvailability(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	transporter, err := h.transporters.ToggleAvailability(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, transporter, "Availability updated")
}
