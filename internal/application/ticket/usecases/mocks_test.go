package usecases

import (
	"context"

	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/domain/ticket"
)

type mockTicketRepository struct {
	CreateFunc          func(ctx context.Context, p ticket.NewTicketParams) (string, error)
	SaveFunc            func(ctx context.Context, t *ticket.Ticket) (bool, error)
	GetFunc             func(ctx context.Context, id string) (*ticket.Ticket, error)
	UpdateFunc          func(ctx context.Context, id string, patch ticket.Patch) (bool, error)
	CloseFunc           func(ctx context.Context, id string, p ticket.CloseParams) (bool, error)
	DeleteFunc          func(ctx context.Context, id string) (bool, error)
	ListFunc            func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error)
	GetUserTicketsFunc  func(ctx context.Context, userID int64, status *ticket.Status) ([]*ticket.Ticket, error)
	GetGuildTicketsFunc func(ctx context.Context, guildID int64, status *ticket.Status) ([]*ticket.Ticket, error)
	GetAllTicketsFunc   func(ctx context.Context, status *ticket.Status) ([]*ticket.Ticket, error)
	GetOpenTicketsFunc  func(ctx context.Context) ([]*ticket.Ticket, error)
	CleanupOldFunc      func(ctx context.Context, daysOld int) (int, error)
}

func (m *mockTicketRepository) Create(ctx context.Context, p ticket.NewTicketParams) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return "", nil
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) (bool, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return true, nil
}

func (m *mockTicketRepository) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) Update(ctx context.Context, id string, patch ticket.Patch) (bool, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return false, nil
}

func (m *mockTicketRepository) Close(ctx context.Context, id string, p ticket.CloseParams) (bool, error) {
	if m.CloseFunc != nil {
		return m.CloseFunc(ctx, id, p)
	}
	return false, nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetUserTickets(ctx context.Context, userID int64, status *ticket.Status) ([]*ticket.Ticket, error) {
	if m.GetUserTicketsFunc != nil {
		return m.GetUserTicketsFunc(ctx, userID, status)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetGuildTickets(ctx context.Context, guildID int64, status *ticket.Status) ([]*ticket.Ticket, error) {
	if m.GetGuildTicketsFunc != nil {
		return m.GetGuildTicketsFunc(ctx, guildID, status)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetAllTickets(ctx context.Context, status *ticket.Status) ([]*ticket.Ticket, error) {
	if m.GetAllTicketsFunc != nil {
		return m.GetAllTicketsFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetOpenTickets(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.GetOpenTicketsFunc != nil {
		return m.GetOpenTicketsFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) CleanupOld(ctx context.Context, daysOld int) (int, error) {
	if m.CleanupOldFunc != nil {
		return m.CleanupOldFunc(ctx, daysOld)
	}
	return 0, nil
}

type mockBanChecker struct {
	banned map[int64]bool
	err    error
}

func (m *mockBanChecker) IsBanned(ctx context.Context, userID int64) (bool, error) {
	return m.banned[userID], m.err
}

type mockAdminChecker struct {
	admins map[int64]bool
	err    error
}

func (m *mockAdminChecker) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return m.admins[userID], m.err
}

type mockGuildLister struct {
	configs []*guild.Config
	err     error
}

func (m *mockGuildLister) List(ctx context.Context) ([]*guild.Config, error) {
	return m.configs, m.err
}

func supportGuilds(channelID int64) *mockGuildLister {
	return &mockGuildLister{configs: []*guild.Config{
		{GuildID: 1},
		{GuildID: 2, SupportChannelID: &channelID},
	}}
}
