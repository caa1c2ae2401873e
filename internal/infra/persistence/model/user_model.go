// Package model contains GORM-specific database models.
// These structs are decoupled from the domain entities and carry the
// PostgreSQL schema details (column types, constraints, associations).
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel is the GORM-specific struct for the 'users' table.
// It carries only the core identity; role, profile and vehicle details
// live in their own tables keyed by user_id.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// --- Associations ---
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
	Role            *UserRoleModel        `gorm:"foreignKey:UserID"`
	Profile         *ProfileModel         `gorm:"foreignKey:UserID"`
	Transporter     *TransporterModel     `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
