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

// roleRepository implements the repository.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{
		db: db,
	}
}

// FindByUserID retrieves the role assignment for a user.
func (repo *roleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserRole, error) {
	var roleM model.UserRoleModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by user")
	}

	return toUserRoleDomain(&roleM), nil
}

// Assign inserts the role assignment for a user. The unique index on
// user_id arbitrates concurrent selection; the losing insert surfaces as
// ErrRoleAlreadyAssigned.
func (repo *roleRepository) Assign(ctx context.Context, userRole *entity.UserRole) error {
	roleM := fromUserRoleDomain(userRole)

	if err := repo.db.WithContext(ctx).Create(roleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrRoleAlreadyAssigned
		}

		return errors.Wrap(err, "failed to assign role")
	}

	// Update the entity with generated values
	userRole.ID = roleM.ID
	userRole.CreatedAt = roleM.CreatedAt

	return nil
}

// --- Mapper Functions ---

// toUserRoleDomain converts a GORM UserRoleModel to a domain UserRole entity.
func toUserRoleDomain(data *model.UserRoleModel) *entity.UserRole {
	if data == nil {
		return nil
	}

	return &entity.UserRole{
		ID:        data.ID,
		UserID:    data.UserID,
		Role:      entity.Role(data.Role),
		CreatedAt: data.CreatedAt,
	}
}

// fromUserRoleDomain converts a domain UserRole entity to a GORM UserRoleModel.
func fromUserRoleDomain(data *entity.UserRole) *model.UserRoleModel {
	if data == nil {
		return nil
	}

	return &model.UserRoleModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Role:      data.Role.String(),
		CreatedAt: data.CreatedAt,
	}
}
