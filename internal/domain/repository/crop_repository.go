// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"croptrade/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCropNotFound is returned when a crop listing does not exist.
var ErrCropNotFound = errors.New("crop not found")

// CropRepository defines the operations for crop listing persistence.
type CropRepository interface {
	// Create persists a new crop listing.
	Create(ctx context.Context, crop *entity.Crop) error

	// FindByID retrieves a single listing by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Crop, error)

	// FindByUserID retrieves all listings of a farmer, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Crop, error)

	// FindAvailable retrieves all listings with status available, newest first.
	FindAvailable(ctx context.Context) ([]*entity.Crop, error)

	// UpdateStatus changes the lifecycle status of a listing.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CropStatus) error
}
