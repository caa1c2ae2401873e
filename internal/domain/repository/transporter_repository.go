// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for transporter persistence.
var (
	// ErrTransporterNotFound is returned when no vehicle record exists for the user.
	ErrTransporterNotFound = errors.New("transporter not found")
	// ErrDuplicateTransporter is returned when the user already registered a vehicle.
	ErrDuplicateTransporter = errors.New("transporter already registered")
)

// TransporterRepository defines the operations for transporter vehicle records.
type TransporterRepository interface {
	// FindByUserID retrieves the vehicle record belonging to a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Transporter, error)

	// ExistsByUserID reports whether the user has registered vehicle details.
	ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error)

	// Create persists a new vehicle record.
	// Returns ErrDuplicateTransporter when the user already has one.
	Create(ctx context.Context, transporter *entity.Transporter) error

	// UpdateAvailability flips whether the transporter accepts new requests.
	UpdateAvailability(ctx context.Context, userID uuid.UUID, isAvailable bool) error
}
