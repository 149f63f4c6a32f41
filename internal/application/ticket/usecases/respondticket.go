package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/domain/ticket"
	apperrors "github.com/ufobot/ufobot/internal/shared/errors"
	"github.com/ufobot/ufobot/internal/shared/logger"
	"github.com/ufobot/ufobot/internal/shared/utils"
)

type RespondTicketCommand struct {
	TicketID      string `json:"ticket_id" validate:"required,ticketid"`
	ResponderID   int64  `json:"responder_id" validate:"snowflake"`
	ResponderName string `json:"responder_name" validate:"required"`
	Response      string `json:"response" validate:"required"`
}

type RespondTicketResult struct {
	TicketID  string
	UserID    int64
	UserName  string
	Message   string
	Status    string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// RespondTicketUseCase records an admin reply and closes the ticket as
// closed_by_admin. The ticket is kept until retention cleanup removes it.
type RespondTicketUseCase struct {
	ticketRepo ticket.Repository
	admins     AdminChecker
	logger     logger.Interface
}

func NewRespondTicketUseCase(
	ticketRepo ticket.Repository,
	admins AdminChecker,
	logger logger.Interface,
) *RespondTicketUseCase {
	return &RespondTicketUseCase{
		ticketRepo: ticketRepo,
		admins:     admins,
		logger:     logger,
	}
}

func (uc *RespondTicketUseCase) Execute(ctx context.Context, cmd RespondTicketCommand) (*RespondTicketResult, error) {
	uc.logger.Infow("executing respond ticket use case", "ticket_id", cmd.TicketID, "responder_id", cmd.ResponderID)

	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	isAdmin, err := uc.admins.IsAdmin(ctx, cmd.ResponderID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check admin list").WithCause(err)
	}
	if !isAdmin {
		return nil, apperrors.NewForbiddenError("admin permissions are required to reply to tickets").WithCause(access.ErrNotAdmin)
	}

	existing, err := uc.ticketRepo.Get(ctx, cmd.TicketID)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			return nil, apperrors.NewNotFoundError("ticket not found", cmd.TicketID).WithCause(err)
		}
		return nil, apperrors.NewInternalError("failed to load ticket").WithCause(err)
	}
	if !existing.IsOpen() {
		return nil, apperrors.NewConflictError("ticket is already closed", existing.Status().String()).
			WithCause(ticket.ErrTicketClosed)
	}

	closed, err := uc.ticketRepo.Close(ctx, cmd.TicketID, ticket.CloseParams{
		ClosedBy:  ticket.DefaultCloser,
		Response:  cmd.Response,
		Responder: cmd.ResponderName,
	})
	if err != nil {
		if errors.Is(err, ticket.ErrTicketClosed) {
			return nil, apperrors.NewConflictError("ticket is already closed").WithCause(err)
		}
		uc.logger.Errorw("failed to close ticket", "ticket_id", cmd.TicketID, "error", err)
		return nil, apperrors.NewInternalError("failed to close ticket").WithCause(err)
	}
	if !closed {
		return nil, apperrors.NewNotFoundError("ticket not found", cmd.TicketID).WithCause(ticket.ErrTicketNotFound)
	}

	updated, err := uc.ticketRepo.Get(ctx, cmd.TicketID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to reload ticket").WithCause(err)
	}

	uc.logger.Infow("ticket answered", "ticket_id", cmd.TicketID, "responder", cmd.ResponderName)

	return &RespondTicketResult{
		TicketID:  updated.ID(),
		UserID:    updated.UserID(),
		UserName:  updated.UserName(),
		Message:   updated.Message(),
		Status:    updated.Status().String(),
		CreatedAt: updated.CreatedAt(),
		ClosedAt:  updated.ClosedTimestamp(),
	}, nil
}
