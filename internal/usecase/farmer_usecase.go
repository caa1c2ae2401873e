// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// ListCropInput defines the crop listing form.
type ListCropInput struct {
	Name         string
	Category     string
	Quantity     float64
	Unit         string
	PricePerUnit float64
	Location     string
	Description  string
}

// RequestTransportInput defines a new transport request.
type RequestTransportInput struct {
	CropID           *uuid.UUID
	PickupLocation   string
	DeliveryLocation string
	PickupLat        *float64
	PickupLon        *float64
	DeliveryLat      *float64
	DeliveryLon      *float64
	Notes            string
}

// --- Output DTOs ---

// FarmerStats summarizes a farmer's activity.
type FarmerStats struct {
	TotalCrops      int     `json:"total_crops"`
	ActiveCrops     int     `json:"active_crops"`
	CompletedTrades int     `json:"completed_trades"`
	TotalRevenue    float64 `json:"total_revenue"`
	SuccessRate     int     `json:"success_rate"` // percent of trades completed
}

// FarmerOverviewOutput is the farmer dashboard payload.
type FarmerOverviewOutput struct {
	Crops  []*entity.Crop  `json:"crops"`
	Trades []*entity.Trade `json:"trades"`
	Stats  FarmerStats     `json:"stats"`
}

// FarmerUsecase defines the farmer dashboard operations.
type FarmerUsecase interface {
	// Overview returns the farmer's crops, sales and derived stats.
	Overview(ctx context.Context, userID uuid.UUID) (*FarmerOverviewOutput, error)

	// ListCrop places a new listing on the marketplace.
	ListCrop(ctx context.Context, userID uuid.UUID, input *ListCropInput) (*entity.Crop, error)

	// UpdateCropStatus changes the status of one of the farmer's own listings.
	UpdateCropStatus(ctx context.Context, userID, cropID uuid.UUID, status entity.CropStatus) error

	// RequestTransport raises a pending transport request.
	RequestTransport(ctx context.Context, userID uuid.UUID, input *RequestTransportInput) (*entity.TransportRequest, error)
}
