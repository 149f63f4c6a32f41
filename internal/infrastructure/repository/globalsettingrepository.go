package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ufobot/ufobot/internal/domain/setting"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// GlobalSettingRepository implements setting.Repository
type GlobalSettingRepository struct {
	guard  *db.Guard
	logger logger.Interface
	now    Clock
}

var _ setting.Repository = (*GlobalSettingRepository)(nil)

func NewGlobalSettingRepository(guard *db.Guard, log logger.Interface, opts ...Option) *GlobalSettingRepository {
	o := buildOptions(opts)
	return &GlobalSettingRepository{
		guard:  guard,
		logger: log,
		now:    o.now,
	}
}

// Get returns the stored value. A NULL value reads as "".
func (r *GlobalSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.GlobalSettingModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where(map[string]interface{}{"key": key}).Take(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", setting.ErrSettingNotFound
		}
		r.logger.Errorw("failed to get setting", "key", key, "error", err)
		return "", fmt.Errorf("failed to get setting: %w", err)
	}

	if model.Value == nil {
		return "", nil
	}
	return *model.Value, nil
}

// Set upserts key, last write wins.
func (r *GlobalSettingRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return setting.ErrInvalidSettingKey
	}

	model := &models.GlobalSettingModel{
		Key:       key,
		Value:     &value,
		UpdatedAt: r.now().UTC(),
	}

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(model).Error
	})
	if err != nil {
		r.logger.Errorw("failed to set setting", "key", key, "error", err)
		return fmt.Errorf("failed to set setting: %w", err)
	}

	return nil
}

func (r *GlobalSettingRepository) GetInt64(ctx context.Context, key string) (int64, error) {
	raw, err := r.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("setting %s is not an integer: %w", key, err)
	}
	return v, nil
}

func (r *GlobalSettingRepository) SetInt64(ctx context.Context, key string, value int64) error {
	return r.Set(ctx, key, strconv.FormatInt(value, 10))
}
