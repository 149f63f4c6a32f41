package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

func TestTicketStatsUseCase_Execute(t *testing.T) {
	var open []*ticket.Ticket
	for i := 0; i < 7; i++ {
		open = append(open, newOpenTicket(t, fmt.Sprintf("open%04d", i)))
	}
	closed := newOpenTicket(t, "closed01")
	require.NoError(t, closed.Close(ticket.CloseParams{}, testNow))
	all := append(append([]*ticket.Ticket{}, open[:2]...), closed)
	all = append(all, open[2:]...)

	repo := &mockTicketRepository{
		GetAllTicketsFunc: func(ctx context.Context, status *ticket.Status) ([]*ticket.Ticket, error) {
			assert.Nil(t, status)
			return all, nil
		},
		// a second read would see a newer ticket and skew the totals
		GetOpenTicketsFunc: func(ctx context.Context) ([]*ticket.Ticket, error) {
			return append(open, newOpenTicket(t, "late0001")), nil
		},
	}

	result, err := NewTicketStatsUseCase(repo, logger.NewNopLogger()).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8, result.Total)
	assert.Equal(t, 7, result.Open)
	assert.Equal(t, 1, result.Closed)
	require.Len(t, result.RecentOpen, recentOpenLimit)
	assert.Equal(t, "open0000", result.RecentOpen[0].TicketID)
	assert.Equal(t, "open0002", result.RecentOpen[2].TicketID)
	assert.Equal(t, "strange lights", result.RecentOpen[0].Preview)
}

func TestTicketStatsUseCase_Execute_Empty(t *testing.T) {
	result, err := NewTicketStatsUseCase(&mockTicketRepository{}, logger.NewNopLogger()).Execute(context.Background())

	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.RecentOpen)
}

func TestTicketStatsUseCase_Execute_Error(t *testing.T) {
	repo := &mockTicketRepository{
		GetAllTicketsFunc: func(ctx context.Context, status *ticket.Status) ([]*ticket.Ticket, error) {
			return nil, errors.New("database is locked")
		},
	}

	_, err := NewTicketStatsUseCase(repo, logger.NewNopLogger()).Execute(context.Background())
	assert.Error(t, err)
}
