package tickets

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/interfaces/cli/access"
	"github.com/ufobot/ufobot/internal/interfaces/cli/clitest"
	"github.com/ufobot/ufobot/internal/interfaces/cli/settings"
)

var ticketIDPattern = regexp.MustCompile(`Ticket ([0-9A-Za-z]{8}) opened`)

func submit(t *testing.T, env *clitest.Env, message string) string {
	t.Helper()
	out, err := env.Execute(NewCommand, "submit",
		"--user", "42", "--name", "alice", "--guild", "7", "--guild-name", "ufo", "-m", message)
	require.NoError(t, err)

	m := ticketIDPattern.FindStringSubmatch(out)
	require.Len(t, m, 2, out)
	return m[1]
}

func TestTicketWorkflow(t *testing.T) {
	env := clitest.NewEnv(t)

	_, err := env.Execute(NewCommand, "submit", "--user", "42", "--name", "alice", "-m", "lights")
	assert.ErrorContains(t, err, "no support channel")

	_, err = env.Execute(settings.NewCommand, "guild", "set", "7", "--support-channel", "555")
	require.NoError(t, err)

	first := submit(t, env, "strange lights over the lake")
	second := submit(t, env, "a humming noise")

	out, err := env.Execute(NewCommand, "list", "--status", "open")
	require.NoError(t, err)
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)

	_, err = env.Execute(NewCommand, "respond", first, "--admin", "99", "--name", "mod", "-r", "weather balloon")
	assert.ErrorContains(t, err, "admin")

	_, err = env.Execute(access.NewAdminCommand, "add", "99")
	require.NoError(t, err)

	out, err = env.Execute(NewCommand, "respond", first, "--admin", "99", "--name", "mod", "-r", "weather balloon")
	require.NoError(t, err)
	assert.Contains(t, out, "closed_by_admin")

	out, err = env.Execute(NewCommand, "show", first)
	require.NoError(t, err)
	assert.Contains(t, out, "weather balloon (by mod)")

	out, err = env.Execute(NewCommand, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "2 total, 1 open, 1 closed")
	assert.Contains(t, out, second)

	_, err = env.Execute(NewCommand, "close", first)
	assert.ErrorContains(t, err, "already closed")

	out, err = env.Execute(NewCommand, "close", second, "--by", "user")
	require.NoError(t, err)
	assert.Contains(t, out, "closed")

	out, err = env.Execute(NewCommand, "list", "--status", "closed")
	require.NoError(t, err)
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)

	out, err = env.Execute(NewCommand, "list", "--status", "closed_by_user")
	require.NoError(t, err)
	assert.Contains(t, out, second)
	assert.NotContains(t, out, first)

	out, err = env.Execute(NewCommand, "cleanup", "--days", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 closed tickets")

	out, err = env.Execute(NewCommand, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tickets found.")
}

func TestTicketUpdate(t *testing.T) {
	env := clitest.NewEnv(t)

	_, err := env.Execute(settings.NewCommand, "guild", "set", "7", "--support-channel", "555")
	require.NoError(t, err)
	id := submit(t, env, "strange lights")

	_, err = env.Execute(NewCommand, "update", id)
	assert.ErrorContains(t, err, "nothing to update")

	out, err := env.Execute(NewCommand, "update", id,
		"--message", "three lights in a triangle", "--response", "looking into it", "--responder", "mod")
	require.NoError(t, err)
	assert.Contains(t, out, "updated")

	out, err = env.Execute(NewCommand, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:   open")
	assert.Contains(t, out, "three lights in a triangle")
	assert.Contains(t, out, "looking into it (by mod)")

	_, err = env.Execute(NewCommand, "update", id, "--status", "closed_by_user")
	require.NoError(t, err)

	out, err = env.Execute(NewCommand, "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Status:   closed_by_user")
	assert.Contains(t, out, "Closed:")

	_, err = env.Execute(NewCommand, "update", id, "--status", "open")
	assert.ErrorContains(t, err, "cannot change")

	_, err = env.Execute(NewCommand, "update", id, "--status", "pending review")
	assert.ErrorContains(t, err, "invalid --status")

	_, err = env.Execute(NewCommand, "update", "missing1", "--message", "x")
	assert.ErrorContains(t, err, "not found")
}

func TestTicketCommands_NotFound(t *testing.T) {
	env := clitest.NewEnv(t)

	for _, args := range [][]string{
		{"show", "missing1"},
		{"close", "missing1"},
		{"delete", "missing1"},
	} {
		_, err := env.Execute(NewCommand, args...)
		assert.Error(t, err, args)
	}

	_, err := env.Execute(NewCommand, "list", "--status", "pending review")
	assert.Error(t, err)

	_, err = env.Execute(NewCommand, "cleanup", "--days", "-1")
	assert.Error(t, err)
}

func TestTicketCommands_BannedUser(t *testing.T) {
	env := clitest.NewEnv(t)

	_, err := env.Execute(settings.NewCommand, "guild", "set", "7", "--support-channel", "555")
	require.NoError(t, err)
	_, err = env.Execute(access.NewBanCommand, "add", "42", "--reason", "spam")
	require.NoError(t, err)

	_, err = env.Execute(NewCommand, "submit", "--user", "42", "--name", "alice", "-m", "let me in")
	assert.ErrorContains(t, err, "banned")
}
