package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/ufobot/ufobot/internal/domain/stats"
	"github.com/ufobot/ufobot/internal/interfaces/cli/access"
	"github.com/ufobot/ufobot/internal/interfaces/cli/clitest"
)

func TestStatsCommand(t *testing.T) {
	env := clitest.NewEnv(t)

	out, err := env.Execute(NewCommand)
	require.NoError(t, err)
	assert.Regexp(t, `Tickets\s+0`, out)

	_, err = env.Execute(access.NewAdminCommand, "add", "99")
	require.NoError(t, err)
	_, err = env.Execute(access.NewBanCommand, "add", "42")
	require.NoError(t, err)

	out, err = env.Execute(NewCommand, "--json")
	require.NoError(t, err)

	var counts domain.Counts
	require.NoError(t, json.Unmarshal([]byte(out), &counts))
	assert.Equal(t, int64(1), counts.Admins)
	assert.Equal(t, int64(1), counts.Bans)
	assert.Zero(t, counts.Tickets)
}
