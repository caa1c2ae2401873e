package model

import (
	"time"

	"github.com/google/uuid"
)

// TransporterModel is the GORM-specific struct for the 'transporters' table.
// The unique index on user_id enforces one vehicle record per user.
type TransporterModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_transporters_user_id"`
	VehicleType   string    `gorm:"type:varchar(50);not null"`
	VehicleNumber string    `gorm:"type:varchar(20);not null"`
	Capacity      string    `gorm:"type:varchar(50);not null"`
	ServiceArea   string    `gorm:"type:varchar(100);not null"`
	IsAvailable   bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransporterModel) TableName() string {
	return "transporters"
}
