// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for role persistence.
var (
	// ErrRoleNotFound is returned when a user has no role assignment yet.
	ErrRoleNotFound = errors.New("role not found")
	// ErrRoleAlreadyAssigned is returned when a second role assignment is
	// attempted for the same user. The first successful write wins.
	ErrRoleAlreadyAssigned = errors.New("role already assigned")
)

// RoleRepository defines the operations for user role assignments.
// A user holds at most one role; the table carries a unique constraint on
// user_id so concurrent assignments collapse to a single winner.
type RoleRepository interface {
	// FindByUserID retrieves the role assignment for a user.
	// Returns ErrRoleNotFound when the user has not chosen yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error)

	// Assign inserts the role assignment for a user.
	// Returns ErrRoleAlreadyAssigned when a row already exists.
	Assign(ctx context.Context, userRole *entity.UserRole) error
}
