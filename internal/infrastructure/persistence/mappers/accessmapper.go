package mappers

import (
	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
)

func AdminToDomain(model models.AdminUserModel) access.Admin {
	return access.Admin{
		UserID:  model.UserID,
		AddedAt: model.AddedAt.UTC(),
	}
}

func BanToDomain(model *models.BannedUserModel) *access.Ban {
	if model == nil {
		return nil
	}
	return &access.Ban{
		UserID:   model.UserID,
		Reason:   model.Reason,
		BannedBy: model.BannedBy,
		BannedAt: model.BannedAt.UTC(),
	}
}

func BanToModel(ban access.Ban) *models.BannedUserModel {
	return &models.BannedUserModel{
		UserID:   ban.UserID,
		Reason:   ban.Reason,
		BannedBy: ban.BannedBy,
		BannedAt: ban.BannedAt,
	}
}
