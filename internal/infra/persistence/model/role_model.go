package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRoleModel is the GORM-specific struct for the 'user_roles' table.
// The unique index on user_id is what makes concurrent role selection
// collapse to a single winner; the losing insert hits the constraint.
type UserRoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_roles_user_id"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserRoleModel) TableName() string {
	return "user_roles"
}
