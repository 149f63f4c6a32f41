package usecases

import (
	"context"

	"github.com/ufobot/ufobot/internal/domain/guild"
)

// BanChecker is the part of the ban list the ticket flows need.
type BanChecker interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
}

// AdminChecker is the part of the admin allowlist the ticket flows need.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type GuildConfigLister interface {
	List(ctx context.Context) ([]*guild.Config, error)
}

type SubmitTicketExecutor interface {
	Execute(ctx context.Context, cmd SubmitTicketCommand) (*SubmitTicketResult, error)
}

type RespondTicketExecutor interface {
	Execute(ctx context.Context, cmd RespondTicketCommand) (*RespondTicketResult, error)
}

type TicketStatsExecutor interface {
	Execute(ctx context.Context) (*TicketStatsResult, error)
}
