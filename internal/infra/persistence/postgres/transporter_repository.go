// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// transporterRepository implements the repository.TransporterRepository interface.
type transporterRepository struct {
	db *gorm.DB
}

// NewTransporterRepository is the constructor for transporterRepository.
func NewTransporterRepository(db *gorm.DB) repository.TransporterRepository {
	return &transporterRepository{
		db: db,
	}
}

// FindByUserID retrieves the vehicle record belonging to a user.
func (repo *transporterRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Transporter, error) {
	var transporterM model.TransporterModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&transporterM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTransporterNotFound
		}

		return nil, errors.Wrap(err, "failed to find transporter by user")
	}

	return toTransporterDomain(&transporterM), nil
}

// ExistsByUserID reports whether the user has registered vehicle details.
func (repo *transporterRepository) ExistsByUserID(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TransporterModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check transporter existence")
	}

	return count > 0, nil
}

// Create persists a new vehicle record. The unique index on user_id keeps
// registration one-shot per user.
func (repo *transporterRepository) Create(ctx context.Context, transporter *entity.Transporter) error {
	transporterM := fromTransporterDomain(transporter)

	if err := repo.db.WithContext(ctx).Create(transporterM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateTransporter
		}

		return errors.Wrap(err, "failed to create transporter")
	}

	// Update the entity with generated values
	transporter.ID = transporterM.ID
	transporter.CreatedAt = transporterM.CreatedAt
	transporter.UpdatedAt = transporterM.UpdatedAt

	return nil
}

// UpdateAvailability flips whether the transporter accepts new requests.
func (repo *transporterRepository) UpdateAvailability(ctx context.Context, userID uuid.UUID, isAvailable bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TransporterModel{}).
		Where("user_id = ?", userID).
		Update("is_available", isAvailable)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update transporter availability")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTransporterNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toTransporterDomain converts a GORM TransporterModel to a domain Transporter entity.
func toTransporterDomain(data *model.TransporterModel) *entity.Transporter {
	if data == nil {
		return nil
	}

	return &entity.Transporter{
		ID:            data.ID,
		UserID:        data.UserID,
		VehicleType:   data.VehicleType,
		VehicleNumber: data.VehicleNumber,
		Capacity:      data.Capacity,
		ServiceArea:   data.ServiceArea,
		IsAvailable:   data.IsAvailable,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// fromTransporterDomain converts a domain Transporter entity to a GORM TransporterModel.
func fromTransporterDomain(data *entity.Transporter) *model.TransporterModel {
	if data == nil {
		return nil
	}

	return &model.TransporterModel{
		ID:            data.ID,
		UserID:        data.UserID,
		VehicleType:   data.VehicleType,
		VehicleNumber: data.VehicleNumber,
		Capacity:      data.Capacity,
		ServiceArea:   data.ServiceArea,
		IsAvailable:   data.IsAvailable,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}
