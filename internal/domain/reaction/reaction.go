// Package reaction tracks how many reactions each user collected per guild.
package reaction

import (
	"context"
	"time"
)

// Count is the counter row of one (guild, user) pair.
type Count struct {
	GuildID        int64
	UserID         int64
	Count          int64
	LastReactionAt *time.Time
}

// Repository stores counters. Counts never go below zero.
type Repository interface {
	// Increment adds delta to the pair's counter, creating it when missing.
	Increment(ctx context.Context, guildID, userID, delta int64) error
	// Get returns 0 for a pair that was never seen.
	Get(ctx context.Context, guildID, userID int64) (int64, error)
	// ListGuild orders by count descending, then user id.
	ListGuild(ctx context.Context, guildID int64) ([]Count, error)
	ListAll(ctx context.Context) (map[int64][]Count, error)
}
