// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrProfileNotFound is returned when a profile does not exist yet.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the operations for user profile persistence.
type ProfileRepository interface {
	// FindByUserID retrieves the profile belonging to a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// Create persists a new profile.
	Create(ctx context.Context, profile *entity.Profile) error

	// Update modifies an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error

	// FindByUserIDs retrieves profiles for a set of users, keyed by user ID.
	// Missing profiles are simply absent from the map.
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Profile, error)
}
