package model

import (
	"time"

	"github.com/google/uuid"
)

// TransportRequestModel is the GORM-specific struct for the 'transport_requests' table.
// Coordinates are stored as plain lat/lon columns; the domain layer folds
// them into geometry points.
type TransportRequestModel struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequesterID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	TransporterID    *uuid.UUID `gorm:"type:uuid;index"`
	CropID           *uuid.UUID `gorm:"type:uuid"`
	PickupLocation   string     `gorm:"type:varchar(255);not null"`
	DeliveryLocation string     `gorm:"type:varchar(255);not null"`
	PickupLat        *float64   `gorm:"type:double precision"`
	PickupLon        *float64   `gorm:"type:double precision"`
	DeliveryLat      *float64   `gorm:"type:double precision"`
	DeliveryLon      *float64   `gorm:"type:double precision"`
	Notes            string     `gorm:"type:varchar(500)"`
	Status           string     `gorm:"type:varchar(20);not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (TransportRequestModel) TableName() string {
	return "transport_requests"
}
