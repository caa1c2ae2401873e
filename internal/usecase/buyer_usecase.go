// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// CropWithFarmer is a marketplace listing enriched with seller details.
type CropWithFarmer struct {
	*entity.Crop

	FarmerName     string `json:"farmer_name"`
	FarmerPhone    string `json:"farmer_phone,omitempty"`
	FarmerLocation string `json:"farmer_location,omitempty"`
}

// BuyerStats summarizes a buyer's purchasing activity.
type BuyerStats struct {
	AvailableCrops     int     `json:"available_crops"`
	CompletedPurchases int     `json:"completed_purchases"`
	TotalSpent         float64 `json:"total_spent"`
}

// MarketplaceOutput is the buyer dashboard payload.
type MarketplaceOutput struct {
	Crops []*CropWithFarmer `json:"crops"`
	Stats BuyerStats        `json:"stats"`
}

// BuyerUsecase defines the buyer dashboard operations.
type BuyerUsecase interface {
	// Marketplace lists available crops with seller details, optionally
	// filtered by a case-insensitive search over name, category and farmer.
	Marketplace(ctx context.Context, userID uuid.UUID, search string) (*MarketplaceOutput, error)

	// MyTrades lists the buyer's purchase history, newest first.
	MyTrades(ctx context.Context, userID uuid.UUID) ([]*entity.Trade, error)
}
