package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/mappers"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

// AdminUserRepository implements access.AdminRepository.
type AdminUserRepository struct {
	guard  *db.Guard
	logger logger.Interface
	now    Clock
}

var _ access.AdminRepository = (*AdminUserRepository)(nil)

func NewAdminUserRepository(guard *db.Guard, log logger.Interface, opts ...Option) *AdminUserRepository {
	o := buildOptions(opts)
	return &AdminUserRepository{
		guard:  guard,
		logger: log,
		now:    o.now,
	}
}

func (r *AdminUserRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	var count int64

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.AdminUserModel{}).Where("user_id = ?", userID).Count(&count).Error
	})
	if err != nil {
		r.logger.Errorw("failed to check admin", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check admin: %w", err)
	}

	return count > 0, nil
}

// Add returns false when the user is already an admin.
func (r *AdminUserRepository) Add(ctx context.Context, userID int64) (bool, error) {
	model := &models.AdminUserModel{UserID: userID, AddedAt: r.now().UTC()}
	added := true

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			if db.IsUniqueViolation(err) {
				added = false
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to add admin", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to add admin: %w", err)
	}

	if !added {
		r.logger.Debugw("admin already present", "user_id", userID)
	}
	return added, nil
}

// Remove returns false when the user was not an admin.
func (r *AdminUserRepository) Remove(ctx context.Context, userID int64) (bool, error) {
	var removed int64

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID).Delete(&models.AdminUserModel{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		r.logger.Errorw("failed to remove admin", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to remove admin: %w", err)
	}

	return removed > 0, nil
}

func (r *AdminUserRepository) List(ctx context.Context) ([]access.Admin, error) {
	var modelList []models.AdminUserModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Order("user_id ASC").Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list admins", "error", err)
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}

	return mapper.MapSlice(modelList, mappers.AdminToDomain), nil
}
