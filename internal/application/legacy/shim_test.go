package legacy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/infrastructure/database"
	"github.com/ufobot/ufobot/internal/infrastructure/migration"
	"github.com/ufobot/ufobot/internal/infrastructure/repository"
	"github.com/ufobot/ufobot/internal/shared/config"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

func setupShim(t *testing.T) (*Shim, *repository.Store) {
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

	store := repository.NewStore(guard, log)
	return NewShim(store.GuildConfigs, store.GlobalSettings, store.Reactions, store.Admins, log), store
}

func int64Ptr(v int64) *int64 { return &v }

func TestShim_ConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	shim, store := setupShim(t)

	empty, err := shim.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.GlobalLogChannelID)
	assert.Empty(t, empty.Guilds)

	in := &Config{
		GlobalLogChannelID: int64Ptr(900),
		Guilds: map[int64]GuildChannels{
			111: {ChannelID: int64Ptr(1001)},
			222: {ChannelID: int64Ptr(2001), SupportChannelID: int64Ptr(2003)},
		},
	}
	require.NoError(t, shim.SaveConfig(ctx, in))

	stored, err := store.GuildConfigs.Get(ctx, 222)
	require.NoError(t, err)
	assert.Nil(t, stored.LogChannelID)
	assert.Equal(t, int64(2003), *stored.SupportChannelID)

	out, err := shim.LoadConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestShim_SaveConfigKeepsMissingFields(t *testing.T) {
	ctx := context.Background()
	shim, store := setupShim(t)

	require.NoError(t, store.GuildConfigs.Set(ctx, 111, guild.ConfigPatch{
		ChannelID:    int64Ptr(1),
		LogChannelID: int64Ptr(2),
	}))

	require.NoError(t, shim.SaveConfig(ctx, &Config{
		Guilds: map[int64]GuildChannels{111: {ChannelID: int64Ptr(10)}},
	}))

	out, err := shim.LoadConfig(ctx)
	require.NoError(t, err)
	entry := out.Guilds[111]
	assert.Equal(t, int64(10), *entry.ChannelID)
	assert.Equal(t, int64(2), *entry.LogChannelID)
}

func TestShim_LoadConfigSkipsUnsetGuilds(t *testing.T) {
	ctx := context.Background()
	shim, store := setupShim(t)

	require.NoError(t, store.GuildConfigs.Set(ctx, 111, guild.ConfigPatch{ChannelID: int64Ptr(0)}))

	out, err := shim.LoadConfig(ctx)
	require.NoError(t, err)
	assert.NotContains(t, out.Guilds, int64(111))
}

func TestShim_SaveReactionsAppliesDifferences(t *testing.T) {
	ctx := context.Background()
	shim, store := setupShim(t)

	require.NoError(t, store.Reactions.Increment(ctx, 1, 10, 5))
	require.NoError(t, store.Reactions.Increment(ctx, 1, 11, 2))

	require.NoError(t, shim.SaveReactions(ctx, Reactions{
		1: {10: 3, 12: 7},
		2: {20: 1},
	}))

	out, err := shim.LoadReactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, Reactions{
		1: {10: 3, 11: 2, 12: 7},
		2: {20: 1},
	}, out)
}

func TestShim_SaveAuthorizedUsersReconciles(t *testing.T) {
	ctx := context.Background()
	shim, store := setupShim(t)

	for _, id := range []int64{1, 2, 3} {
		_, err := store.Admins.Add(ctx, id)
		require.NoError(t, err)
	}

	require.NoError(t, shim.SaveAuthorizedUsers(ctx, &AuthorizedUsers{AdminUsers: []int64{2, 4, 4}}))

	out, err := shim.LoadAuthorizedUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, out.AdminUsers)

	require.NoError(t, shim.SaveAuthorizedUsers(ctx, &AuthorizedUsers{}))
	out, err = shim.LoadAuthorizedUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, out.AdminUsers)

	require.NoError(t, shim.SaveAuthorizedUsers(ctx, &AuthorizedUsers{AdminUsers: []int64{}}))
	out, err = shim.LoadAuthorizedUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.AdminUsers)
}
