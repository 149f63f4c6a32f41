package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/shared/logger"
)

type countingJob struct {
	calls       atomic.Int32
	hadDeadline atomic.Bool
	ran         chan struct{}
	err         error
	panic       bool
}

func newCountingJob() *countingJob {
	return &countingJob{ran: make(chan struct{}, 16)}
}

func (j *countingJob) Execute(ctx context.Context) (int, error) {
	j.calls.Add(1)
	_, ok := ctx.Deadline()
	j.hadDeadline.Store(ok)
	defer func() { j.ran <- struct{}{} }()
	if j.panic {
		panic("cleanup exploded")
	}
	return 1, j.err
}

func waitForRun(t *testing.T, job *countingJob) {
	t.Helper()
	select {
	case <-job.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func newTestManager(t *testing.T) *SchedulerManager {
	t.Helper()
	m, err := NewSchedulerManager(logger.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Stop() })
	return m
}

func TestSchedulerManager_TicketCleanupRunsImmediately(t *testing.T) {
	m := newTestManager(t)
	job := newCountingJob()

	require.NoError(t, m.RegisterTicketCleanup(job, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, ticketCleanupJobName, m.Jobs()[0].Name())
	assert.ElementsMatch(t, []string{"tickets", "cleanup"}, m.Jobs()[0].Tags())

	m.Start()
	assert.True(t, m.IsStarted())
	waitForRun(t, job)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	assert.Equal(t, int32(1), job.calls.Load())
	assert.False(t, job.hadDeadline.Load())
}

func TestSchedulerManager_JobFailuresDoNotStopScheduler(t *testing.T) {
	tests := []struct {
		name string
		job  *countingJob
	}{
		{"error", &countingJob{ran: make(chan struct{}, 16), err: errors.New("database is locked")}},
		{"panic", &countingJob{ran: make(chan struct{}, 16), panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager(t)
			require.NoError(t, m.RegisterTicketCleanup(tt.job, time.Hour))

			m.Start()
			waitForRun(t, tt.job)

			assert.True(t, m.IsStarted())
			require.NoError(t, m.Stop())
		})
	}
}

func TestSchedulerManager_RegisterValidation(t *testing.T) {
	m := newTestManager(t)

	assert.ErrorIs(t, m.RegisterTicketCleanup(newCountingJob(), 0), ErrInvalidInterval)
	assert.Error(t, m.RegisterTicketCleanupCron(newCountingJob(), "not a cron"))
	require.NoError(t, m.RegisterTicketCleanupCron(newCountingJob(), "30 3 * * *"))
	assert.Len(t, m.Jobs(), 1)
}

func TestSchedulerManager_StopBeforeStart(t *testing.T) {
	m := newTestManager(t)
	assert.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}
