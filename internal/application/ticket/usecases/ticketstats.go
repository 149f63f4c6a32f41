package usecases

import (
	"context"

	"github.com/ufobot/ufobot/internal/application/ticket/dto"
	"github.com/ufobot/ufobot/internal/domain/ticket"
	apperrors "github.com/ufobot/ufobot/internal/shared/errors"
	"github.com/ufobot/ufobot/internal/shared/logger"
	"github.com/ufobot/ufobot/internal/shared/mapper"
)

// recentOpenLimit is how many open tickets the summary lists.
const recentOpenLimit = 5

type TicketStatsResult struct {
	Total      int                     `json:"total"`
	Open       int                     `json:"open"`
	Closed     int                     `json:"closed"`
	RecentOpen []*dto.TicketSummaryDTO `json:"recent_open"`
}

type TicketStatsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewTicketStatsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *TicketStatsUseCase {
	return &TicketStatsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *TicketStatsUseCase) Execute(ctx context.Context) (*TicketStatsResult, error) {
	all, err := uc.ticketRepo.GetAllTickets(ctx, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load tickets").WithCause(err)
	}

	// both counts come from one read so they always add up
	var open []*ticket.Ticket
	for _, t := range all {
		if t.IsOpen() {
			open = append(open, t)
		}
	}

	recent := open
	if len(recent) > recentOpenLimit {
		recent = recent[:recentOpenLimit]
	}

	return &TicketStatsResult{
		Total:      len(all),
		Open:       len(open),
		Closed:     len(all) - len(open),
		RecentOpen: mapper.MapSlice(recent, dto.ToTicketSummaryDTO),
	}, nil
}
