// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// authRepository implements the repository.AuthRepository interface.
type authRepository struct {
	db *gorm.DB
}

// NewAuthRepository is the constructor for authRepository.
func NewAuthRepository(db *gorm.DB) repository.AuthRepository {
	return &authRepository{
		db: db,
	}
}

// CreateAuthentication persists a new authentication method.
func (repo *authRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	authM := fromAuthDomain(auth)

	if err := repo.db.WithContext(ctx).Create(authM).Error; err != nil {
		return errors.Wrap(err, "failed to create authentication")
	}

	// Update the entity with generated values
	auth.ID = authM.ID
	auth.CreatedAt = authM.CreatedAt

	return nil
}

// FindAuthentication retrieves an authentication method by its provider and provider-specific ID.
func (repo *authRepository) FindAuthentication(ctx context.Context, provider string, providerUserID string) (*entity.Authentication, error) {
	var authM model.AuthenticationModel

	if err := repo.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&authM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAuthNotFound
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	return toAuthDomain(&authM), nil
}

// UpdateAuthentication modifies an existing authentication method, e.g. after a password reset.
func (repo *authRepository) UpdateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AuthenticationModel{}).
		Where("id = ?", auth.ID).
		Update("password_hash", auth.PasswordHash)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update authentication")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAuthNotFound
	}

	return nil
}

// CreateRefreshToken persists a new refresh token, representing a user session.
func (repo *authRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		return errors.Wrap(err, "failed to create refresh token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
func (repo *authRepository) FindRefreshTokenByHash(ctx context.Context, hash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel

	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", hash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// DeleteRefreshTokenByHash deletes a refresh token by its hash, effectively ending a session.
func (repo *authRepository) DeleteRefreshTokenByHash(ctx context.Context, hash string) error {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", hash).
		Delete(&model.RefreshTokenModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete refresh token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTokenNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAuthDomain converts a GORM AuthenticationModel to a domain Authentication entity.
func toAuthDomain(data *model.AuthenticationModel) *entity.Authentication {
	if data == nil {
		return nil
	}

	return &entity.Authentication{
		ID:             data.ID,
		UserID:         data.UserID,
		Provider:       data.Provider,
		ProviderUserID: data.ProviderUserID,
		PasswordHash:   data.PasswordHash,
		CreatedAt:      data.CreatedAt,
	}
}

// fromAuthDomain converts a domain Authentication entity to a GORM AuthenticationModel.
func fromAuthDomain(data *entity.Authentication) *model.AuthenticationModel {
	if data == nil {
		return nil
	}

	return &model.AuthenticationModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Provider:       data.Provider,
		ProviderUserID: data.ProviderUserID,
		PasswordHash:   data.PasswordHash,
		CreatedAt:      data.CreatedAt,
	}
}
