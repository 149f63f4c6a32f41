package mappers

import (
	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

func GuildConfigToDomain(model *models.GuildConfigModel) *guild.Config {
	if model == nil {
		return nil
	}
	return &guild.Config{
		GuildID:          model.GuildID,
		ChannelID:        model.ChannelID,
		LogChannelID:     model.LogChannelID,
		SupportChannelID: model.SupportChannelID,
		CreatedAt:        model.CreatedAt.UTC(),
		UpdatedAt:        model.UpdatedAt.UTC(),
	}
}

func GuildConfigsToDomain(modelList []*models.GuildConfigModel) []*guild.Config {
	return mapper.MapSlice(modelList, GuildConfigToDomain)
}

// GuildConfigPatchToUpdateMap lists the columns a patch writes.
func GuildConfigPatchToUpdateMap(patch guild.ConfigPatch) map[string]interface{} {
	updates := make(map[string]interface{})
	if patch.ChannelID != nil {
		updates["channel_id"] = *patch.ChannelID
	}
	if patch.LogChannelID != nil {
		updates["log_channel_id"] = *patch.LogChannelID
	}
	if patch.SupportChannelID != nil {
		updates["support_channel_id"] = *patch.SupportChannelID
	}
	return updates
}
