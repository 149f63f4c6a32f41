package legacy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_UnmarshalMixedShapes(t *testing.T) {
	data := []byte(`{
		"global_log_channel_id": 900,
		"111": 1001,
		"222": {"channel_id": 2001, "support_channel_id": 2003},
		"333": null
	}`)

	var cfg Config
	require.NoError(t, json.Unmarshal(data, &cfg))

	require.NotNil(t, cfg.GlobalLogChannelID)
	assert.Equal(t, int64(900), *cfg.GlobalLogChannelID)
	require.Len(t, cfg.Guilds, 2)

	bare := cfg.Guilds[111]
	require.NotNil(t, bare.ChannelID)
	assert.Equal(t, int64(1001), *bare.ChannelID)
	assert.Nil(t, bare.LogChannelID)

	full := cfg.Guilds[222]
	assert.Equal(t, int64(2001), *full.ChannelID)
	assert.Nil(t, full.LogChannelID)
	assert.Equal(t, int64(2003), *full.SupportChannelID)
}

func TestConfig_MarshalUsesBareFormForChannelOnly(t *testing.T) {
	channel := int64(1001)
	logChannel := int64(2002)
	cfg := Config{Guilds: map[int64]GuildChannels{
		111: {ChannelID: &channel},
		222: {ChannelID: &channel, LogChannelID: &logChannel},
	}}

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"111": 1001, "222": {"channel_id": 1001, "log_channel_id": 2002}}`, string(data))
}

func TestConfig_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"guild key", `{"not-a-guild": 1}`},
		{"channel id", `{"111": "abc"}`},
		{"global id", `{"global_log_channel_id": "abc"}`},
		{"not an object", `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			assert.Error(t, json.Unmarshal([]byte(tt.data), &cfg))
		})
	}
}

func TestReactions_JSONKeysAreStrings(t *testing.T) {
	var r Reactions
	require.NoError(t, json.Unmarshal([]byte(`{"1": {"10": 3, "11": 0}}`), &r))
	assert.Equal(t, Reactions{1: {10: 3, 11: 0}}, r)
}

func TestAuthorizedUsers_AbsentKeyIsNil(t *testing.T) {
	var absent, empty AuthorizedUsers
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"admin_users": []}`), &empty))

	assert.Nil(t, absent.AdminUsers)
	assert.NotNil(t, empty.AdminUsers)
}
