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

// cropRepository implements the repository.CropRepository interface.
type cropRepository struct {
	db *gorm.DB
}

// NewCropRepository is the constructor for cropRepository.
func NewCropRepository(db *gorm.DB) repository.CropRepository {
	return &cropRepository{
		db: db,
	}
}

// Create persists a new crop listing.
func (repo *cropRepository) Create(ctx context.Context, crop *entity.Crop) error {
	cropM := fromCropDomain(crop)

	if err := repo.db.WithContext(ctx).Create(cropM).Error; err != nil {
		return errors.Wrap(err, "failed to create crop")
	}

	// Update the entity with generated values
	crop.ID = cropM.ID
	crop.CreatedAt = cropM.CreatedAt
	crop.UpdatedAt = cropM.UpdatedAt

	return nil
}

// FindByID retrieves a single listing by its ID.
func (repo *cropRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Crop, error) {
	var cropM model.CropModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cropM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCropNotFound
		}

		return nil, errors.Wrap(err, "failed to find crop by ID")
	}

	return toCropDomain(&cropM), nil
}

// FindByUserID retrieves all listings of a farmer, newest first.
func (repo *cropRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Crop, error) {
	var cropModels []*model.CropModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cropModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find crops by user")
	}

	return toCropDomainSlice(cropModels), nil
}

// FindAvailable retrieves all listings with status available, newest first.
func (repo *cropRepository) FindAvailable(ctx context.Context) ([]*entity.Crop, error) {
	var cropModels []*model.CropModel

	if err := repo.db.WithContext(ctx).
		Where("status = ?", string(entity.CropAvailable)).
		Order("created_at DESC").
		Find(&cropModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find available crops")
	}

	return toCropDomainSlice(cropModels), nil
}

// UpdateStatus changes the lifecycle status of a listing.
func (repo *cropRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CropStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CropModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update crop status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCropNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toCropDomain converts a GORM CropModel to a domain Crop entity.
func toCropDomain(data *model.CropModel) *entity.Crop {
	if data == nil {
		return nil
	}

	return &entity.Crop{
		ID:           data.ID,
		UserID:       data.UserID,
		Name:         data.Name,
		Category:     data.Category,
		Quantity:     data.Quantity,
		Unit:         data.Unit,
		PricePerUnit: data.PricePerUnit,
		Location:     data.Location,
		Description:  data.Description,
		Status:       entity.CropStatus(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toCropDomainSlice(models []*model.CropModel) []*entity.Crop {
	crops := make([]*entity.Crop, 0, len(models))
	for _, cropM := range models {
		crops = append(crops, toCropDomain(cropM))
	}

	return crops
}

// fromCropDomain converts a domain Crop entity to a GORM CropModel.
func fromCropDomain(data *entity.Crop) *model.CropModel {
	if data == nil {
		return nil
	}

	return &model.CropModel{
		ID:           data.ID,
		UserID:       data.UserID,
		Name:         data.Name,
		Category:     data.Category,
		Quantity:     data.Quantity,
		Unit:         data.Unit,
		PricePerUnit: data.PricePerUnit,
		Location:     data.Location,
		Description:  data.Description,
		Status:       string(data.Status),
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
