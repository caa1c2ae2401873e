package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel is the GORM-specific struct for the 'profiles' table.
// One row per user, created lazily on first fetch.
type ProfileModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;primary_key"`
	FullName     string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(20)"`
	Location     string    `gorm:"type:varchar(255)"`
	UserType     string    `gorm:"type:varchar(20)"`
	AvatarURL    string    `gorm:"type:varchar(512)"`
	UPIPaymentID string    `gorm:"column:upi_payment_id;type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProfileModel) TableName() string {
	return "profiles"
}
