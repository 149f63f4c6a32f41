package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/interfaces/cli/clitest"
)

func TestAdminCommands(t *testing.T) {
	env := clitest.NewEnv(t)

	out, err := env.Execute(NewAdminCommand, "add", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "added")

	out, err = env.Execute(NewAdminCommand, "add", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "already an admin")

	out, err = env.Execute(NewAdminCommand, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "99")

	_, err = env.Execute(NewAdminCommand, "remove", "99")
	require.NoError(t, err)

	_, err = env.Execute(NewAdminCommand, "remove", "99")
	assert.ErrorContains(t, err, "not an admin")

	_, err = env.Execute(NewAdminCommand, "add", "-5")
	assert.Error(t, err)
}

func TestBanCommands(t *testing.T) {
	env := clitest.NewEnv(t)

	_, err := env.Execute(NewBanCommand, "add", "42", "--reason", "spam", "--by", "99")
	require.NoError(t, err)

	out, err := env.Execute(NewBanCommand, "add", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "already banned")

	out, err = env.Execute(NewBanCommand, "show", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "by 99: spam")

	_, err = env.Execute(NewBanCommand, "add", "43")
	require.NoError(t, err)

	out, err = env.Execute(NewBanCommand, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "43")
	assert.Contains(t, out, "by -: -")

	_, err = env.Execute(NewBanCommand, "remove", "42")
	require.NoError(t, err)

	_, err = env.Execute(NewBanCommand, "show", "42")
	assert.ErrorContains(t, err, "not banned")
}
