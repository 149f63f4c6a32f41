package usecases

import (
	"context"

	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// DefaultRetentionDays is how long closed tickets are kept.
const DefaultRetentionDays = 30

// CleanupTicketsJob deletes closed tickets past the retention window. It is
// meant to be run by the scheduler.
type CleanupTicketsJob struct {
	ticketRepo    ticket.Repository
	retentionDays int
	logger        logger.Interface
}

func NewCleanupTicketsJob(ticketRepo ticket.Repository, retentionDays int, logger logger.Interface) *CleanupTicketsJob {
	if retentionDays < 0 {
		retentionDays = DefaultRetentionDays
	}
	return &CleanupTicketsJob{
		ticketRepo:    ticketRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Execute returns the number of tickets removed.
func (j *CleanupTicketsJob) Execute(ctx context.Context) (int, error) {
	deleted, err := j.ticketRepo.CleanupOld(ctx, j.retentionDays)
	if err != nil {
		j.logger.Errorw("ticket cleanup failed", "retention_days", j.retentionDays, "error", err)
		return 0, err
	}
	if deleted > 0 {
		j.logger.Infow("old tickets removed", "count", deleted, "retention_days", j.retentionDays)
	}
	return deleted, nil
}
