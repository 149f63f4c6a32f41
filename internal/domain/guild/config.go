// Package guild holds per-guild bot configuration.
package guild

import (
	"context"
	"errors"
	"time"
)

// ErrConfigNotFound is returned when a guild has never been configured.
var ErrConfigNotFound = errors.New("guild config not found")

// Config is the stored configuration of one guild. Channel ids are optional.
type Config struct {
	GuildID          int64
	ChannelID        *int64
	LogChannelID     *int64
	SupportChannelID *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ConfigPatch carries the fields to write. Nil fields are left untouched.
type ConfigPatch struct {
	ChannelID        *int64
	LogChannelID     *int64
	SupportChannelID *int64
}

// IsEmpty reports whether the patch sets no field at all.
func (p ConfigPatch) IsEmpty() bool {
	return p.ChannelID == nil && p.LogChannelID == nil && p.SupportChannelID == nil
}

// Apply copies the set fields of p onto c.
func (p ConfigPatch) Apply(c *Config) {
	if p.ChannelID != nil {
		v := *p.ChannelID
		c.ChannelID = &v
	}
	if p.LogChannelID != nil {
		v := *p.LogChannelID
		c.LogChannelID = &v
	}
	if p.SupportChannelID != nil {
		v := *p.SupportChannelID
		c.SupportChannelID = &v
	}
}

// Repository persists guild configuration.
type Repository interface {
	Get(ctx context.Context, guildID int64) (*Config, error)
	// Set inserts the guild row when missing, otherwise updates only the
	// fields present in patch.
	Set(ctx context.Context, guildID int64, patch ConfigPatch) error
	List(ctx context.Context) ([]*Config, error)
}
