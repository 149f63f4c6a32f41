package legacy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ufobot/ufobot/internal/interfaces/cli/clitest"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLegacyImportExport(t *testing.T) {
	env := clitest.NewEnv(t)

	configFile := writeFile(t, "config.json",
		`{"global_log_channel_id": 900, "111": 1001, "222": {"channel_id": 2001, "support_channel_id": 2003}}`)
	reactionsFile := writeFile(t, "reactions.json", `{"111": {"10": 4, "11": 1}}`)
	adminsFile := writeFile(t, "authorized_users.json", `{"admin_users": [99, 98]}`)

	out, err := env.Execute(NewCommand, "import",
		"--config-file", configFile,
		"--reactions-file", reactionsFile,
		"--admins-file", adminsFile,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 guild configurations")
	assert.Contains(t, out, "Imported 2 admin users")

	out, err = env.Execute(NewCommand, "export", "config")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"global_log_channel_id": 900, "111": 1001, "222": {"channel_id": 2001, "support_channel_id": 2003}}`, out)

	out, err = env.Execute(NewCommand, "export", "reactions")
	require.NoError(t, err)
	assert.JSONEq(t, `{"111": {"10": 4, "11": 1}}`, out)

	out, err = env.Execute(NewCommand, "export", "admins")
	require.NoError(t, err)
	assert.JSONEq(t, `{"admin_users": [98, 99]}`, out)
}

func TestLegacyCommandErrors(t *testing.T) {
	env := clitest.NewEnv(t)

	_, err := env.Execute(NewCommand, "import")
	assert.ErrorContains(t, err, "nothing to import")

	_, err = env.Execute(NewCommand, "import", "--config-file", writeFile(t, "config.json", `{"abc": 1}`))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = env.Execute(NewCommand, "export", "tickets")
	assert.Error(t, err)
}
