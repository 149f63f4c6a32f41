package mappers

import (
	"time"

	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/infrastructure/persistence/models"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

// TicketMapper converts between ticket entities and rows.
type TicketMapper interface {
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	ToModel(entity *ticket.Ticket) *models.TicketModel
	ToDomainList(modelList []*models.TicketModel) ([]*ticket.Ticket, error)
	ToUpdateMap(patch ticket.Patch) map[string]interface{}
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	if model == nil {
		return nil, nil
	}

	return ticket.ReconstructTicket(
		model.TicketID,
		model.UserID,
		model.UserName,
		model.GuildID,
		model.GuildName,
		model.Message,
		ticket.Status(model.Status),
		model.CreatedAt.UTC(),
		model.AdminResponse,
		model.AdminResponder,
		utcPtr(model.ResponseTimestamp),
		model.ClosedBy,
		utcPtr(model.ClosedTimestamp),
	)
}

func (m *TicketMapperImpl) ToModel(entity *ticket.Ticket) *models.TicketModel {
	if entity == nil {
		return nil
	}

	return &models.TicketModel{
		TicketID:          entity.ID(),
		UserID:            entity.UserID(),
		UserName:          entity.UserName(),
		GuildID:           entity.GuildID(),
		GuildName:         entity.GuildName(),
		Message:           entity.Message(),
		Status:            entity.Status().String(),
		CreatedAt:         entity.CreatedAt(),
		AdminResponse:     entity.AdminResponse(),
		AdminResponder:    entity.AdminResponder(),
		ResponseTimestamp: entity.ResponseTimestamp(),
		ClosedBy:          entity.ClosedBy(),
		ClosedTimestamp:   entity.ClosedTimestamp(),
	}
}

func (m *TicketMapperImpl) ToDomainList(modelList []*models.TicketModel) ([]*ticket.Ticket, error) {
	return mapper.MapSliceWithError(modelList, m.ToDomain)
}

// ToUpdateMap turns the set fields of patch into column assignments. Column
// names come only from this fixed list, never from caller input.
func (m *TicketMapperImpl) ToUpdateMap(patch ticket.Patch) map[string]interface{} {
	updates := make(map[string]interface{})

	if patch.UserID != nil {
		updates["user_id"] = *patch.UserID
	}
	if patch.UserName != nil {
		updates["user_name"] = *patch.UserName
	}
	if patch.GuildID != nil {
		updates["guild_id"] = *patch.GuildID
	}
	if patch.GuildName != nil {
		updates["guild_name"] = *patch.GuildName
	}
	if patch.Message != nil {
		updates["message"] = *patch.Message
	}
	if patch.Status != nil {
		updates["status"] = patch.Status.String()
	}
	if patch.AdminResponse != nil {
		updates["admin_response"] = *patch.AdminResponse
	}
	if patch.AdminResponder != nil {
		updates["admin_responder"] = *patch.AdminResponder
	}
	if patch.ResponseTimestamp != nil {
		updates["response_timestamp"] = patch.ResponseTimestamp.UTC()
	}
	if patch.ClosedBy != nil {
		updates["closed_by"] = *patch.ClosedBy
	}
	if patch.ClosedTimestamp != nil {
		updates["closed_timestamp"] = patch.ClosedTimestamp.UTC()
	}
	if patch.CreatedAt != nil {
		updates["created_at"] = patch.CreatedAt.UTC()
	}

	return updates
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
