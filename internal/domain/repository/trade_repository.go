// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
)

// TradeRepository defines read access to trades. Trades are written by an
// external settlement flow; the dashboards only list them.
type TradeRepository interface {
	// FindBySellerID retrieves trades where the user sold, newest first.
	FindBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*entity.Trade, error)

	// FindByBuyerID retrieves trades where the user bought, newest first.
	FindByBuyerID(ctx context.Context, buyerID uuid.UUID) ([]*entity.Trade, error)
}
