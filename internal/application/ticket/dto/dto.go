package dto

import (
	"time"

	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

type TicketDTO struct {
	TicketID          string     `json:"ticket_id"`
	UserID            int64      `json:"user_id"`
	UserName          string     `json:"user_name"`
	GuildID           int64      `json:"guild_id"`
	GuildName         string     `json:"guild_name"`
	Message           string     `json:"message"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	AdminResponse     *string    `json:"admin_response,omitempty"`
	AdminResponder    *string    `json:"admin_responder,omitempty"`
	ResponseTimestamp *time.Time `json:"response_timestamp,omitempty"`
	ClosedBy          *string    `json:"closed_by,omitempty"`
	ClosedTimestamp   *time.Time `json:"closed_timestamp,omitempty"`
}

func ToTicketDTO(t *ticket.Ticket) *TicketDTO {
	if t == nil {
		return nil
	}

	return &TicketDTO{
		TicketID:          t.ID(),
		UserID:            t.UserID(),
		UserName:          t.UserName(),
		GuildID:           t.GuildID(),
		GuildName:         t.GuildName(),
		Message:           t.Message(),
		Status:            t.Status().String(),
		CreatedAt:         t.CreatedAt(),
		AdminResponse:     t.AdminResponse(),
		AdminResponder:    t.AdminResponder(),
		ResponseTimestamp: t.ResponseTimestamp(),
		ClosedBy:          t.ClosedBy(),
		ClosedTimestamp:   t.ClosedTimestamp(),
	}
}

func ToTicketDTOList(tickets []*ticket.Ticket) []*TicketDTO {
	return mapper.MapSlice(tickets, ToTicketDTO)
}

// TicketSummaryDTO is the short form used in listings.
type TicketSummaryDTO struct {
	TicketID  string    `json:"ticket_id"`
	UserName  string    `json:"user_name"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}

// previewLength caps message previews, ellipsis included.
const previewLength = 100

func ToTicketSummaryDTO(t *ticket.Ticket) *TicketSummaryDTO {
	return &TicketSummaryDTO{
		TicketID:  t.ID(),
		UserName:  t.UserName(),
		Preview:   Preview(t.Message()),
		CreatedAt: t.CreatedAt(),
	}
}

// Preview shortens a message to previewLength runes.
func Preview(message string) string {
	runes := []rune(message)
	if len(runes) <= previewLength {
		return message
	}
	return string(runes[:previewLength-3]) + "..."
}
