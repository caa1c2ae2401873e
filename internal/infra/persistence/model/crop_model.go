package model

import (
	"time"

	"github.com/google/uuid"
)

// CropModel is the GORM-specific struct for the 'crops' table.
type CropModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Category     string    `gorm:"type:varchar(50);not null"`
	Quantity     float64   `gorm:"type:numeric(12,3);not null"`
	Unit         string    `gorm:"type:varchar(20);not null"`
	PricePerUnit float64   `gorm:"type:numeric(12,2);not null"`
	Location     string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:varchar(500)"`
	Status       string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (CropModel) TableName() string {
	return "crops"
}
