// Package repository implements the bot's stores on top of the connection
// guard. Every method runs in exactly one guarded transaction.
package repository

import (
	"time"

	"github.com/ufobot/ufobot/internal/shared/biztime"
	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/id"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// Clock supplies timestamps written by the stores.
type Clock func() time.Time

// IDGenerator produces ticket ids.
type IDGenerator func() (string, error)

type options struct {
	now   Clock
	newID IDGenerator
}

type Option func(*options)

// WithClock overrides the wall clock, mainly for retention tests.
func WithClock(now Clock) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithTicketIDGenerator(gen IDGenerator) Option {
	return func(o *options) {
		o.newID = gen
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:   biztime.NowUTC,
		newID: id.NewTicketID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Store bundles every repository over one guard.
type Store struct {
	Guard          *db.Guard
	GuildConfigs   *GuildConfigRepository
	GlobalSettings *GlobalSettingRepository
	Admins         *AdminUserRepository
	Bans           *BannedUserRepository
	Reactions      *ReactionRepository
	Tickets        *TicketRepository
	Stats          *StatsRepository
}

func NewStore(guard *db.Guard, log logger.Interface, opts ...Option) *Store {
	return &Store{
		Guard:          guard,
		GuildConfigs:   NewGuildConfigRepository(guard, log, opts...),
		GlobalSettings: NewGlobalSettingRepository(guard, log, opts...),
		Admins:         NewAdminUserRepository(guard, log, opts...),
		Bans:           NewBannedUserRepository(guard, log, opts...),
		Reactions:      NewReactionRepository(guard, log, opts...),
		Tickets:        NewTicketRepository(guard, log, opts...),
		Stats:          NewStatsRepository(guard, log),
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.Guard.Close()
}
