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

// profileRepository implements the repository.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindByUserID retrieves the profile belonging to a user.
func (repo *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	var profileM model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find profile by user")
	}

	return toProfileDomain(&profileM), nil
}

// Create persists a new profile.
func (repo *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileM := fromProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		return errors.Wrap(err, "failed to create profile")
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

// Update modifies an existing profile.
func (repo *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProfileModel{}).
		Where("user_id = ?", profile.UserID).
		Updates(map[string]any{
			"full_name":      profile.FullName,
			"phone":          profile.Phone,
			"location":       profile.Location,
			"user_type":      profile.UserType,
			"avatar_url":     profile.AvatarURL,
			"upi_payment_id": profile.UPIPaymentID,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update profile")
	}

	if result.RowsAffected == 0 {
		return repository.ErrProfileNotFound
	}

	return nil
}

// FindByUserIDs retrieves profiles for a set of users, keyed by user ID.
// Missing profiles are simply absent from the map.
func (repo *profileRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]*entity.Profile, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]*entity.Profile{}, nil
	}

	var profileModels []*model.ProfileModel

	if err := repo.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&profileModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find profiles by users")
	}

	profiles := make(map[uuid.UUID]*entity.Profile, len(profileModels))
	for _, profileM := range profileModels {
		profiles[profileM.UserID] = toProfileDomain(profileM)
	}

	return profiles, nil
}

// --- Mapper Functions ---

// toProfileDomain converts a GORM ProfileModel to a domain Profile entity.
func toProfileDomain(data *model.ProfileModel) *entity.Profile {
	if data == nil {
		return nil
	}

	return &entity.Profile{
		UserID:       data.UserID,
		FullName:     data.FullName,
		Phone:        data.Phone,
		Location:     data.Location,
		UserType:     data.UserType,
		AvatarURL:    data.AvatarURL,
		UPIPaymentID: data.UPIPaymentID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromProfileDomain converts a domain Profile entity to a GORM ProfileModel.
func fromProfileDomain(data *entity.Profile) *model.ProfileModel {
	if data == nil {
		return nil
	}

	return &model.ProfileModel{
		UserID:       data.UserID,
		FullName:     data.FullName,
		Phone:        data.Phone,
		Location:     data.Location,
		UserType:     data.UserType,
		AvatarURL:    data.AvatarURL,
		UPIPaymentID: data.UPIPaymentID,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
