package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ufobot/ufobot/internal/domain/reaction"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/mappers"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

// ReactionRepository implements reaction.Repository.
type ReactionRepository struct {
	guard  *db.Guard
	logger logger.Interface
	now    Clock
}

var _ reaction.Repository = (*ReactionRepository)(nil)

func NewReactionRepository(guard *db.Guard, log logger.Interface, opts ...Option) *ReactionRepository {
	o := buildOptions(opts)
	return &ReactionRepository{
		guard:  guard,
		logger: log,
		now:    o.now,
	}
}

// Increment adds delta in a single upsert statement so the read and the
// write cannot be split. The result is clamped at zero.
func (r *ReactionRepository) Increment(ctx context.Context, guildID, userID, delta int64) error {
	now := r.now().UTC()
	model := &models.UserReactionModel{
		GuildID:        guildID,
		UserID:         userID,
		ReactionCount:  max(delta, 0),
		LastReactionAt: &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"reaction_count":   gorm.Expr("max(user_reactions.reaction_count + ?, 0)", delta),
				"last_reaction_at": now,
				"updated_at":       now,
			}),
		}).Create(model).Error
	})
	if err != nil {
		r.logger.Errorw("failed to increment reactions",
			"guild_id", guildID,
			"user_id", userID,
			"delta", delta,
			"error", err,
		)
		return fmt.Errorf("failed to increment reactions: %w", err)
	}

	return nil
}

func (r *ReactionRepository) Get(ctx context.Context, guildID, userID int64) (int64, error) {
	var modelList []models.UserReactionModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where("guild_id = ? AND user_id = ?", guildID, userID).Limit(1).Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to get reactions", "guild_id", guildID, "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to get reactions: %w", err)
	}

	if len(modelList) == 0 {
		return 0, nil
	}
	return modelList[0].ReactionCount, nil
}

func (r *ReactionRepository) ListGuild(ctx context.Context, guildID int64) ([]reaction.Count, error) {
	var modelList []models.UserReactionModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Where("guild_id = ?", guildID).
			Order("reaction_count DESC").
			Order("user_id ASC").
			Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list guild reactions", "guild_id", guildID, "error", err)
		return nil, fmt.Errorf("failed to list guild reactions: %w", err)
	}

	return mappers.ReactionsToDomain(modelList), nil
}

// ListAll groups every counter by guild, each group ordered like ListGuild.
func (r *ReactionRepository) ListAll(ctx context.Context) (map[int64][]reaction.Count, error) {
	var modelList []models.UserReactionModel

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		return tx.Order("guild_id ASC").
			Order("reaction_count DESC").
			Order("user_id ASC").
			Find(&modelList).Error
	})
	if err != nil {
		r.logger.Errorw("failed to list reactions", "error", err)
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}

	counts := mappers.ReactionsToDomain(modelList)
	return mapper.GroupBy(counts, func(c reaction.Count) int64 { return c.GuildID }), nil
}
