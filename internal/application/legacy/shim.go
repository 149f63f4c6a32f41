// Package legacy translates between the bot's old flat-file shapes and the
// stores. It keeps no state of its own.
package legacy

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/domain/reaction"
	"github.com/ufobot/ufobot/internal/domain/setting"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

type Shim struct {
	guilds    guild.Repository
	settings  setting.Repository
	reactions reaction.Repository
	admins    access.AdminRepository
	logger    logger.Interface
}

func NewShim(
	guilds guild.Repository,
	settings setting.Repository,
	reactions reaction.Repository,
	admins access.AdminRepository,
	logger logger.Interface,
) *Shim {
	return &Shim{
		guilds:    guilds,
		settings:  settings,
		reactions: reactions,
		admins:    admins,
		logger:    logger,
	}
}

// LoadConfig renders the stored configuration in the config.json shape.
// Zero channel ids count as unset, as they did in the file format.
func (s *Shim) LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{Guilds: make(map[int64]GuildChannels)}

	globalLog, err := s.settings.GetInt64(ctx, setting.KeyGlobalLogChannelID)
	switch {
	case err == nil:
		cfg.GlobalLogChannelID = &globalLog
	case errors.Is(err, setting.ErrSettingNotFound):
	default:
		return nil, fmt.Errorf("failed to load global log channel: %w", err)
	}

	configs, err := s.guilds.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guild configs: %w", err)
	}

	for _, gc := range configs {
		entry := GuildChannels{
			ChannelID:        nonZero(gc.ChannelID),
			LogChannelID:     nonZero(gc.LogChannelID),
			SupportChannelID: nonZero(gc.SupportChannelID),
		}
		if entry.ChannelID == nil && entry.LogChannelID == nil && entry.SupportChannelID == nil {
			continue
		}
		cfg.Guilds[gc.GuildID] = entry
	}

	return cfg, nil
}

// SaveConfig writes every entry of cfg. Fields missing from an entry are
// left as stored.
func (s *Shim) SaveConfig(ctx context.Context, cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.GlobalLogChannelID != nil {
		if err := s.settings.SetInt64(ctx, setting.KeyGlobalLogChannelID, *cfg.GlobalLogChannelID); err != nil {
			return fmt.Errorf("failed to save global log channel: %w", err)
		}
	}

	for _, guildID := range slices.Sorted(maps.Keys(cfg.Guilds)) {
		entry := cfg.Guilds[guildID]
		patch := guild.ConfigPatch{
			ChannelID:        entry.ChannelID,
			LogChannelID:     entry.LogChannelID,
			SupportChannelID: entry.SupportChannelID,
		}
		if err := s.guilds.Set(ctx, guildID, patch); err != nil {
			return fmt.Errorf("failed to save config for guild %d: %w", guildID, err)
		}
	}

	s.logger.Debugw("legacy config saved", "guilds", len(cfg.Guilds))
	return nil
}

func (s *Shim) LoadReactions(ctx context.Context) (Reactions, error) {
	all, err := s.reactions.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reactions: %w", err)
	}

	out := make(Reactions, len(all))
	for guildID, counts := range all {
		users := make(map[int64]int64, len(counts))
		for _, c := range counts {
			users[c.UserID] = c.Count
		}
		out[guildID] = users
	}
	return out, nil
}

// SaveReactions brings each listed counter to the given value by applying
// the difference. Pairs not listed are untouched.
func (s *Shim) SaveReactions(ctx context.Context, data Reactions) error {
	for _, guildID := range slices.Sorted(maps.Keys(data)) {
		users := data[guildID]
		for _, userID := range slices.Sorted(maps.Keys(users)) {
			current, err := s.reactions.Get(ctx, guildID, userID)
			if err != nil {
				return fmt.Errorf("failed to read reactions for user %d in guild %d: %w", userID, guildID, err)
			}

			diff := users[userID] - current
			if diff == 0 {
				continue
			}
			if err := s.reactions.Increment(ctx, guildID, userID, diff); err != nil {
				return fmt.Errorf("failed to save reactions for user %d in guild %d: %w", userID, guildID, err)
			}
		}
	}
	return nil
}

func (s *Shim) LoadAuthorizedUsers(ctx context.Context) (*AuthorizedUsers, error) {
	admins, err := s.admins.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin users: %w", err)
	}

	ids := make([]int64, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.UserID)
	}
	return &AuthorizedUsers{AdminUsers: ids}, nil
}

// SaveAuthorizedUsers makes the admin allowlist equal to auth.AdminUsers.
func (s *Shim) SaveAuthorizedUsers(ctx context.Context, auth *AuthorizedUsers) error {
	if auth == nil || auth.AdminUsers == nil {
		return nil
	}

	current, err := s.admins.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load admin users: %w", err)
	}

	wanted := make(map[int64]bool, len(auth.AdminUsers))
	for _, userID := range auth.AdminUsers {
		wanted[userID] = true
	}

	var added, removed int
	for _, userID := range slices.Sorted(maps.Keys(wanted)) {
		ok, err := s.admins.Add(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to add admin %d: %w", userID, err)
		}
		if ok {
			added++
		}
	}

	for _, a := range current {
		if wanted[a.UserID] {
			continue
		}
		if _, err := s.admins.Remove(ctx, a.UserID); err != nil {
			return fmt.Errorf("failed to remove admin %d: %w", a.UserID, err)
		}
		removed++
	}

	s.logger.Infow("admin allowlist reconciled", "added", added, "removed", removed)
	return nil
}

func nonZero(v *int64) *int64 {
	if v == nil || *v == 0 {
		return nil
	}
	id := *v
	return &id
}
