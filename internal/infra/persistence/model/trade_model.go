package model

import (
	"time"

	"github.com/google/uuid"
)

// TradeModel is the GORM-specific struct for the 'trades' table.
// Trades are written by the settlement flow; this service only reads them
// for the dashboard aggregates.
type TradeModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CropID      *uuid.UUID `gorm:"type:uuid"`
	SellerID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	BuyerID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Quantity    float64    `gorm:"type:numeric(12,3);not null"`
	TotalAmount float64    `gorm:"type:numeric(14,2);not null"`
	Status      string     `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TradeModel) TableName() string {
	return "trades"
}
