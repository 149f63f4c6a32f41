package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ufobot/ufobot/internal/domain/setting"
)

// GuildChannels is the object form of a guild entry in the config file.
type GuildChannels struct {
	ChannelID        *int64 `json:"channel_id,omitempty"`
	LogChannelID     *int64 `json:"log_channel_id,omitempty"`
	SupportChannelID *int64 `json:"support_channel_id,omitempty"`
}

// isBare reports whether the entry is written as a plain channel id.
func (g GuildChannels) isBare() bool {
	return g.ChannelID != nil && g.LogChannelID == nil && g.SupportChannelID == nil
}

// Config mirrors config.json: a global_log_channel_id key next to one key
// per guild id whose value is either a channel id or a GuildChannels object.
type Config struct {
	GlobalLogChannelID *int64
	Guilds             map[int64]GuildChannels
}

func (c Config) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Guilds)+1)
	if c.GlobalLogChannelID != nil {
		out[setting.KeyGlobalLogChannelID] = *c.GlobalLogChannelID
	}
	for guildID, entry := range c.Guilds {
		key := strconv.FormatInt(guildID, 10)
		if entry.isBare() {
			out[key] = *entry.ChannelID
		} else {
			out[key] = entry
		}
	}
	return json.Marshal(out)
}

func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.GlobalLogChannelID = nil
	c.Guilds = make(map[int64]GuildChannels, len(raw))

	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}

		if key == setting.KeyGlobalLogChannelID {
			var id int64
			if err := json.Unmarshal(value, &id); err != nil {
				return fmt.Errorf("invalid %s: %w", key, err)
			}
			c.GlobalLogChannelID = &id
			continue
		}

		guildID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid guild id %q: %w", key, err)
		}

		var entry GuildChannels
		if trimmed := bytes.TrimSpace(value); len(trimmed) > 0 && trimmed[0] == '{' {
			if err := json.Unmarshal(trimmed, &entry); err != nil {
				return fmt.Errorf("invalid config for guild %d: %w", guildID, err)
			}
		} else {
			var channelID int64
			if err := json.Unmarshal(trimmed, &channelID); err != nil {
				return fmt.Errorf("invalid channel id for guild %d: %w", guildID, err)
			}
			entry.ChannelID = &channelID
		}
		c.Guilds[guildID] = entry
	}

	return nil
}

// Reactions mirrors reactions.json: guild id -> user id -> count.
type Reactions map[int64]map[int64]int64

// AuthorizedUsers mirrors authorized_users.json. A nil AdminUsers means the
// key was absent and the allowlist is left alone.
type AuthorizedUsers struct {
	AdminUsers []int64 `json:"admin_users"`
}
