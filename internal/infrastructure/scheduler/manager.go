// Package scheduler runs the bot's periodic maintenance jobs on gocron v2.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ufobot/ufobot/internal/shared/biztime"
	"github.com/ufobot/ufobot/internal/shared/goroutine"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

const ticketCleanupJobName = "ticket-cleanup"

var ErrInvalidInterval = errors.New("scheduler: interval must be positive")

// BatchJob processes one batch and returns the number of items handled.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a scheduler whose cron expressions are
// evaluated in the configured server timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// ========================================
// Ticket Cleanup
// ========================================

// RegisterTicketCleanup runs job every interval, starting immediately.
func (m *SchedulerManager) RegisterTicketCleanup(job BatchJob, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { m.runCleanup(job) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("tickets", "cleanup"),
		gocron.WithName(ticketCleanupJobName),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered ticket cleanup job", "interval", interval.String())
	return nil
}

// RegisterTicketCleanupCron runs job on a five-field cron schedule.
func (m *SchedulerManager) RegisterTicketCleanupCron(job BatchJob, expr string) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(expr, false),
		gocron.NewTask(func() { m.runCleanup(job) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("tickets", "cleanup"),
		gocron.WithName(ticketCleanupJobName),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered ticket cleanup job", "cron", expr)
	return nil
}

// runCleanup passes job an undeadlined context: store operations run to
// commit once the guard is taken, so a deadline could not interrupt them.
func (m *SchedulerManager) runCleanup(job BatchJob) {
	ctx := context.Background()

	goroutine.SafeRun(m.logger, ticketCleanupJobName, func() {
		startTime := biztime.NowUTC()

		count, err := job.Execute(ctx)
		if err != nil {
			m.logger.Errorw("ticket cleanup failed",
				"error", err,
				"duration", time.Since(startTime),
			)
			return
		}

		m.logger.Debugw("ticket cleanup finished",
			"deleted", count,
			"duration", time.Since(startTime),
		)
	})
}

// ========================================
// Scheduler Lifecycle Methods
// ========================================

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
