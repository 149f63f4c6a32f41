package mappers

import (
	"github.com/ufobot/ufobot/internal/domain/reaction"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

func ReactionToDomain(model models.UserReactionModel) reaction.Count {
	return reaction.Count{
		GuildID:        model.GuildID,
		UserID:         model.UserID,
		Count:          model.ReactionCount,
		LastReactionAt: utcPtr(model.LastReactionAt),
	}
}

func ReactionsToDomain(modelList []models.UserReactionModel) []reaction.Count {
	return mapper.MapSlice(modelList, ReactionToDomain)
}
