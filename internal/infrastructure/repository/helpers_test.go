package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/infrastructure/database"
	"github.com/ufobot/ufobot/internal/infrastructure/migration"
	"github.com/ufobot/ufobot/internal/shared/config"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

var baseTime = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// setupTestStore opens a fresh SQLite file with the full schema applied.
func setupTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()

	guard, err := database.OpenGuard(&config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "ufo_bot.db"),
		BusyTimeoutMS: 5000,
		MaxOpenConns:  1,
		Synchronous:   "OFF",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Close() })

	log := logger.NewNopLogger()
	require.NoError(t, migration.InitSchema(context.Background(), guard, log))

	return NewStore(guard, log, opts...)
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }
