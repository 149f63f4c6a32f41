package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/mappers"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// GuildConfigRepository implements guild.Repository.
type GuildConfigRepository struct {
	guard  *db.Guard
	logger logger.Interface
	now    Clock
}

var _ guild.Repository = (*GuildConfigRepository)(nil)

func NewGuildConfigRepository(guard *db.Guard, log logger.Interface, opts ...Option) *GuildConfigRepository {
	o := buildOptions(opts)
	return &GuildConfigRepository{
		guard:  guard,
		logger: log,
		now:    o.now,
	}
}

func (r *GuildConfigRepository) Get(ctx context.Context, guildID int64) (*guild.Config, error) {
	var model models.GuildConfigModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where("guild_id = ?", guildID).Take(&model).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, guild.ErrConfigNotFound
		}
		r.logger.Errorw("failed to get guild config", "guild_id", guildID, "error", err)
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	return mappers.GuildConfigToDomain(&model), nil
}

func (r *GuildConfigRepository) Set(ctx context.Context, guildID int64, patch guild.ConfigPatch) error {
	now := r.now().UTC()

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		var existing models.GuildConfigModel
		err := tx.Where("guild_id = ?", guildID).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfg := &guild.Config{GuildID: guildID}
			patch.Apply(cfg)
			return tx.Create(&models.GuildConfigModel{
				GuildID:          guildID,
				ChannelID:        cfg.ChannelID,
				LogChannelID:     cfg.LogChannelID,
				SupportChannelID: cfg.SupportChannelID,
				CreatedAt:        now,
				UpdatedAt:        now,
			}).Error
		}
		if err != nil {
			return err
		}

		if patch.IsEmpty() {
			return nil
		}

		updates := mappers.GuildConfigPatchToUpdateMap(patch)
		updates["updated_at"] = now
		return tx.Model(&models.GuildConfigModel{}).
			Where("guild_id = ?", guildID).
			Updates(updates).Error
	})
	if err != nil {
		r.logger.Errorw("failed to set guild config", "guild_id", guildID, "error", err)
		return fmt.Errorf("failed to set guild config: %w", err)
	}

	return nil
}

// List returns every configured guild ordered by guild id.
func (r *GuildConfigRepository) List(ctx context.Context) ([]*guild.Config, error) {
	var modelList []*models.GuildConfigModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Order("guild_id ASC").Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list guild configs", "error", err)
		return nil, fmt.Errorf("failed to list guild configs: %w", err)
	}

	return mappers.GuildConfigsToDomain(modelList), nil
}
