// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"croptrade/internal/domain/entity"
	"croptrade/internal/domain/repository"
	"croptrade/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// refreshTokenRepository implements the repository.RefreshTokenRepository interface.
type refreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository is the constructor for refreshTokenRepository.
func NewRefreshTokenRepository(db *gorm.DB) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		db: db,
	}
}

// CreateRefreshToken persists a new refresh token, representing a user session.
func (repo *refreshTokenRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	tokenM := fromRefreshTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		return errors.Wrap(err, "failed to create refresh token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
// Expired tokens are reported as expired rather than silently surfaced.
func (repo *refreshTokenRepository) FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel

	if err := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token by hash")
	}

	if tokenM.ExpiresAt.Before(time.Now()) {
		return nil, repository.ErrRefreshTokenExpired
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// FindRefreshTokenByID retrieves a refresh token record by its unique ID.
func (repo *refreshTokenRepository) FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error) {
	var tokenM model.RefreshTokenModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find refresh token by ID")
	}

	return toRefreshTokenDomain(&tokenM), nil
}

// FindRefreshTokensByUserID retrieves all active refresh tokens for a specific user.
func (repo *refreshTokenRepository) FindRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error) {
	var tokenModels []*model.RefreshTokenModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Order("created_at DESC").
		Find(&tokenModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find refresh tokens by user")
	}

	tokens := make([]*entity.RefreshToken, 0, len(tokenModels))
	for _, tokenM := range tokenModels {
		tokens = append(tokens, toRefreshTokenDomain(tokenM))
	}

	return tokens, nil
}

// UpdateRefreshToken updates an existing refresh token record.
func (repo *refreshTokenRepository) UpdateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"token_hash": token.TokenHash,
			"expires_at": token.ExpiresAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update refresh token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// DeleteRefreshToken removes a refresh token by its ID, effectively ending a session.
func (repo *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.RefreshTokenModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete refresh token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// DeleteRefreshTokenByHash deletes a refresh token by its hash, effectively ending a session.
func (repo *refreshTokenRepository) DeleteRefreshTokenByHash(ctx context.Context, tokenHash string) error {
	result := repo.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&model.RefreshTokenModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete refresh token by hash")
	}

	if result.RowsAffected == 0 {
		return repository.ErrRefreshTokenNotFound
	}

	return nil
}

// DeleteRefreshTokensByUserID removes all refresh tokens for a specific user.
func (repo *refreshTokenRepository) DeleteRefreshTokensByUserID(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete refresh tokens by user")
	}

	return nil
}

// DeleteExpiredRefreshTokens removes all expired refresh tokens from the database.
func (repo *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context) error {
	if err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&model.RefreshTokenModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete expired refresh tokens")
	}

	return nil
}

// CountActiveSessionsByUserID returns the number of active (non-expired) sessions for a user.
func (repo *refreshTokenRepository) CountActiveSessionsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND expires_at > ?", userID, time.Now()).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count active sessions")
	}

	return int(count), nil
}

// --- Mapper Functions ---

// toRefreshTokenDomain converts a GORM RefreshTokenModel to a domain RefreshToken entity.
func toRefreshTokenDomain(data *model.RefreshTokenModel) *entity.RefreshToken {
	if data == nil {
		return nil
	}

	return &entity.RefreshToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

// fromRefreshTokenDomain converts a domain RefreshToken entity to a GORM RefreshTokenModel.
func fromRefreshTokenDomain(data *entity.RefreshToken) *model.RefreshTokenModel {
	if data == nil {
		return nil
	}

	return &model.RefreshTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
