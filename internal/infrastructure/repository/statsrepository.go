package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/domain/stats"
	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// StatsRepository reads aggregate counts. It never writes.
type StatsRepository struct {
	guard  *db.Guard
	logger logger.Interface
}

var _ stats.Reader = (*StatsRepository)(nil)

func NewStatsRepository(guard *db.Guard, log logger.Interface) *StatsRepository {
	return &StatsRepository{guard: guard, logger: log}
}

func (r *StatsRepository) Counts(ctx context.Context) (*stats.Counts, error) {
	var c stats.Counts

	err := r.guard.WithConnection(ctx, func(tx *gorm.DB) error {
		counters := []struct {
			model interface{}
			dst   *int64
		}{
			{&models.GuildConfigModel{}, &c.GuildConfigs},
			{&models.GlobalSettingModel{}, &c.Settings},
			{&models.UserReactionModel{}, &c.ReactionRows},
			{&models.AdminUserModel{}, &c.Admins},
			{&models.BannedUserModel{}, &c.Bans},
			{&models.TicketModel{}, &c.Tickets},
		}
		for _, ct := range counters {
			if err := tx.Model(ct.model).Count(ct.dst).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.TicketModel{}).
			Where("status = ?", ticket.StatusOpen.String()).
			Count(&c.OpenTickets).Error; err != nil {
			return err
		}

		return tx.Model(&models.UserReactionModel{}).
			Select("COALESCE(SUM(reaction_count), 0)").
			Scan(&c.TotalReactions).Error
	})
	if err != nil {
		r.logger.Errorw("failed to read stats", "error", err)
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	return &c, nil
}
