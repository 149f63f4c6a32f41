// Package db provides the connection guard that serialises every access to
// the bot's single storage file.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	apperrors "github.com/ufobot/ufobot/internal/shared/errors"
)

// ErrGuardClosed is returned by operations attempted after Close.
var ErrGuardClosed = errors.New("storage is closed")

// Guard owns the process-wide lock in front of the storage file. At most one
// transaction is in flight at any time; callers block until the lock is free.
// There is no acquisition timeout, so a stuck operation stalls every other one.
type Guard struct {
	mu     sync.Mutex
	db     *gorm.DB
	closed bool
}

// NewGuard wraps an open database handle.
func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// WithConnection runs fn inside a single transaction while holding the lock.
// The transaction commits when fn returns nil and rolls back when fn returns an
// error or panics; the lock is released on every path. Cancelling ctx does not
// interrupt a transaction that has already started.
func (g *Guard) WithConnection(ctx context.Context, fn func(tx *gorm.DB) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrGuardClosed
	}

	return g.db.WithContext(context.WithoutCancel(ctx)).Transaction(fn)
}

// WithSQLDB grants exclusive access to the raw pool without opening a
// transaction. The schema manager uses it because goose manages its own.
func (g *Guard) WithSQLDB(ctx context.Context, fn func(sqlDB *sql.DB) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrGuardClosed
	}

	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return fn(sqlDB)
}

// Close waits for the in-flight operation, then closes the pool.
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil
	}
	g.closed = true

	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a duplicate-key failure, either
// translated by gorm or raw from the driver.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err)
}
