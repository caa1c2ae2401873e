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

// FarmerHandler holds dependencies for farmer dashboard handlers.
type FarmerHandler struct {
	farmers usecase.FarmerUsecase
}

// NewFarmerHandler is the constructor for FarmerHandler, injected by Fx.
func NewFarmerHandler(farmers usecase.FarmerUsecase) *FarmerHandler {
	return &FarmerHandler{farmers: farmers}
}

// Overview returns the farmer's crops, sales and derived stats.
func (h *FarmerHandler) Overview(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	output, err := h.farmers.Overview(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Farmer overview retrieved")
}

type listCropRequest struct {
	Name         string  `json:"name" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Unit         string  `json:"unit" validate:"required"`
	PricePerUnit float64 `json:"price_per_unit" validate:"required,gt=0"`
	Location     string  `json:"location" validate:"required"`
	Description  string  `json:"description"`
}

// ListCrop places a new listing on the marketplace.
func (h *FarmerHandler) ListCrop(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req listCropRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid crop listing input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	crop, err := h.farmers.ListCrop(c.Request().Context(), userID, &usecase.ListCropInput{
		Name:         req.Name,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		PricePerUnit: req.PricePerUnit,
		Location:     req.Location,
		Description:  req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, crop, "Crop listed successfully")
}

type updateCropStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateCropStatus changes the status of one of the farmer's own listings.
func (h *FarmerHandler) UpdateCropStatus(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cropID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid crop ID")
	}

	var req updateCropStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid crop status input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.farmers.UpdateCropStatus(c.Request().Context(), userID, cropID, entity.CropStatus(req.Status)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": req.Status}, "Crop status updated")
}

type requestTransportRequest struct {
	CropID           *uuid.UUID `json:"crop_id"`
	PickupLocation   string     `json:"pickup_location" validate:"required"`
	DeliveryLocation string     `json:"delivery_location" validate:"required"`
	PickupLat        *float64   `json:"pickup_lat"`
	PickupLon        *float64   `json:"pickup_lon"`
	DeliveryLat      *float64   `json:"delivery_lat"`
	DeliveryLon      *float64   `json:"delivery_lon"`
	Notes            string     `json:"notes"`
}

// RequestTransport raises a pending transport request.
func (h *FarmerHandler) RequestTransport(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var req requestTransportRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transport request input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	request, err := h.farmers.RequestTransport(c.Request().Context(), userID, &usecase.RequestTransportInput{
		CropID:           req.CropID,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		PickupLat:        req.PickupLat,
		PickupLon:        req.PickupLon,
		DeliveryLat:      req.DeliveryLat,
		DeliveryLon:      req.DeliveryLon,
		Notes:            req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, request, "Transport request created")
}
