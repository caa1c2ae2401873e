// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TradeStatus represents the settlement state of a trade.
type TradeStatus string

const (
	// TradePending means the trade was recorded but not yet settled.
	TradePending TradeStatus = "pending"
	// TradeCompleted means the trade settled; it counts towards revenue.
	TradeCompleted TradeStatus = "completed"
	// TradeCancelled means the trade fell through.
	TradeCancelled TradeStatus = "cancelled"
)

// Trade records a purchase of a crop between a buyer and a seller.
// Trades enter the system externally; the dashboards only read them.
type Trade struct {
	ID          uuid.UUID   // The unique ID for this trade.
	CropID      *uuid.UUID  // The crop the trade concerns, when still linked.
	SellerID    uuid.UUID   // The farmer selling.
	BuyerID     uuid.UUID   // The buyer purchasing.
	Quantity    float64     // Amount traded, in the crop's unit.
	TotalAmount float64     // Full settlement amount.
	Status      TradeStatus // Settlement state.
	CreatedAt   time.Time   // Timestamp of when the trade was recorded.
	UpdatedAt   time.Time   // Timestamp of the last modification.
}
