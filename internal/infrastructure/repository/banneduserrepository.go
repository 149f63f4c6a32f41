package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/mappers"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// BannedUserRepository implements access.BanRepository.
type BannedUserRepository struct {
	guard  *db.Guard
	logger logger.Interface
	now    Clock
}

var _ access.BanRepository = (*BannedUserRepository)(nil)

func NewBannedUserRepository(guard *db.Guard, log logger.Interface, opts ...Option) *BannedUserRepository {
	o := buildOptions(opts)
	return &BannedUserRepository{
		guard:  guard,
		logger: log,
		now:    o.now,
	}
}

func (r *BannedUserRepository) IsBanned(ctx context.Context, userID int64) (bool, error) {
	var count int64

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Model(&models.BannedUserModel{}).Where("user_id = ?", userID).Count(&count).Error
	})
	if err != nil {
		r.logger.Errorw("failed to check ban", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check ban: %w", err)
	}

	return count > 0, nil
}

// Ban returns false when the user is already banned; the existing ban is
// left unchanged. A zero BannedAt is stamped with the store clock.
func (r *BannedUserRepository) Ban(ctx context.Context, ban access.Ban) (bool, error) {
	if ban.BannedAt.IsZero() {
		ban.BannedAt = r.now()
	}
	ban.BannedAt = ban.BannedAt.UTC()
	model := mappers.BanToModel(ban)
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
		r.logger.Errorw("failed to ban user", "user_id", ban.UserID, "error", err)
		return false, fmt.Errorf("failed to ban user: %w", err)
	}

	return added, nil
}

// Unban returns false when the user was not banned.
func (r *BannedUserRepository) Unban(ctx context.Context, userID int64) (bool, error) {
	var removed int64

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		result := tx.Where("user_id = ?", userID).Delete(&models.BannedUserModel{})
		removed = result.RowsAffected
		return result.Error
	})
	if err != nil {
		r.logger.Errorw("failed to unban user", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to unban user: %w", err)
	}

	return removed > 0, nil
}

func (r *BannedUserRepository) Get(ctx context.Context, userID int64) (*access.Ban, error) {
	var model models.BannedUserModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Take(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrBanNotFound
		}
		r.logger.Errorw("failed to get ban", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get ban: %w", err)
	}

	return mappers.BanToDomain(&model), nil
}

func (r *BannedUserRepository) List(ctx context.Context) ([]access.Ban, error) {
	var modelList []*models.BannedUserModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Order("user_id ASC").Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list bans", "error", err)
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}

	bans := make([]access.Ban, 0, len(modelList))
	for _, m := range modelList {
		bans = append(bans, *mappers.BanToDomain(m))
	}
	return bans, nil
}
