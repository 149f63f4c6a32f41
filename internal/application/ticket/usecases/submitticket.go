package usecases

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/domain/ticket"
	apperrors "github.com/ufobot/ufobot/internal/shared/errors"
	"github.com/ufobot/ufobot/internal/shared/logger"
	"github.com/ufobot/ufobot/internal/shared/utils"
)

// DirectMessageGuildName labels tickets opened outside any guild.
const DirectMessageGuildName = "Direct Message"

type SubmitTicketCommand struct {
	UserID    int64  `json:"user_id" validate:"snowflake"`
	UserName  string `json:"user_name" validate:"required"`
	GuildID   int64  `json:"guild_id" validate:"gte=0"`
	GuildName string `json:"guild_name"`
	Message   string `json:"message" validate:"required"`
}

type SubmitTicketResult struct {
	TicketID         string
	Status           string
	SupportChannelID int64
}

// SubmitTicketUseCase opens a support ticket for a user and reports which
// channel staff should be notified in.
type SubmitTicketUseCase struct {
	ticketRepo       ticket.Repository
	bans             BanChecker
	guilds           GuildConfigLister
	maxMessageLength int
	logger           logger.Interface
}

func NewSubmitTicketUseCase(
	ticketRepo ticket.Repository,
	bans BanChecker,
	guilds GuildConfigLister,
	maxMessageLength int,
	logger logger.Interface,
) *SubmitTicketUseCase {
	return &SubmitTicketUseCase{
		ticketRepo:       ticketRepo,
		bans:             bans,
		guilds:           guilds,
		maxMessageLength: maxMessageLength,
		logger:           logger,
	}
}

func (uc *SubmitTicketUseCase) Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error) {
	uc.logger.Infow("executing submit ticket use case", "user_id", cmd.UserID, "guild_id", cmd.GuildID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid submit ticket command", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	banned, err := uc.bans.IsBanned(ctx, cmd.UserID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to check ban list").WithCause(err)
	}
	if banned {
		uc.logger.Infow("banned user tried to open a ticket", "user_id", cmd.UserID)
		return nil, apperrors.NewForbiddenError("you are banned from using this bot").WithCause(access.ErrUserBanned)
	}

	supportChannelID, err := uc.findSupportChannel(ctx)
	if err != nil {
		return nil, err
	}

	guildName := cmd.GuildName
	if cmd.GuildID == 0 && guildName == "" {
		guildName = DirectMessageGuildName
	}

	ticketID, err := uc.ticketRepo.Create(ctx, ticket.NewTicketParams{
		UserID:    cmd.UserID,
		UserName:  cmd.UserName,
		GuildID:   cmd.GuildID,
		GuildName: guildName,
		Message:   cmd.Message,
	})
	if err != nil {
		if errors.Is(err, ticket.ErrTicketIDCollision) {
			return nil, apperrors.NewConflictError("ticket id already in use, please try again").WithCause(err)
		}
		uc.logger.Errorw("failed to create ticket", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewInternalError("failed to create ticket").WithCause(err)
	}

	uc.logger.Infow("ticket submitted", "ticket_id", ticketID, "support_channel_id", supportChannelID)

	return &SubmitTicketResult{
		TicketID:         ticketID,
		Status:           ticket.StatusOpen.String(),
		SupportChannelID: supportChannelID,
	}, nil
}

func (uc *SubmitTicketUseCase) validateCommand(cmd SubmitTicketCommand) error {
	if err := utils.ValidateStruct(cmd); err != nil {
		return err
	}
	if uc.maxMessageLength > 0 && utf8.RuneCountInString(cmd.Message) > uc.maxMessageLength {
		return apperrors.NewValidationError(
			fmt.Sprintf("message exceeds maximum length of %d characters", uc.maxMessageLength),
		)
	}
	return nil
}

// findSupportChannel picks the first guild, by id, that has a support
// channel configured.
func (uc *SubmitTicketUseCase) findSupportChannel(ctx context.Context) (int64, error) {
	configs, err := uc.guilds.List(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to load guild configuration").WithCause(err)
	}

	for _, cfg := range configs {
		if cfg.SupportChannelID != nil && *cfg.SupportChannelID != 0 {
			return *cfg.SupportChannelID, nil
		}
	}

	return 0, apperrors.NewNotFoundError("no support channel has been configured")
}
