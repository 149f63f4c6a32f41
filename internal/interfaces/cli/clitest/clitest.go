// Package clitest runs operator commands against a throwaway database.
package clitest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

// Env is a temporary config file pointing at a fresh database.
type Env struct {
	ConfigPath string
	DBPath     string
}

// NewEnv writes a config file into t.TempDir().
func NewEnv(t *testing.T) *Env {
	t.Helper()

	dir := t.TempDir()
	env := &Env{
		ConfigPath: filepath.Join(dir, "config.yaml"),
		DBPath:     filepath.Join(dir, "data", "ufo_bot.db"),
	}

	content, err := yaml.Marshal(map[string]any{
		"database": map[string]any{
			"path":           env.DBPath,
			"max_open_conns": 1,
			"synchronous":    "OFF",
		},
		"logger": map[string]any{
			"level":       "debug",
			"format":      "json",
			"output_path": filepath.Join(dir, "ufobot.log"),
		},
		"tickets": map[string]any{
			"retention_days":   30,
			"cleanup_interval": "1h",
		},
	})
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}

	if err := os.WriteFile(env.ConfigPath, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

// Options returns flags pointing at the env's config file.
func (e *Env) Options() *bootstrap.Options {
	return &bootstrap.Options{ConfigPath: e.ConfigPath}
}

// Execute builds a command with the env's options, runs it with args and
// returns what it printed.
func (e *Env) Execute(newCmd func(*bootstrap.Options) *cobra.Command, args ...string) (string, error) {
	cmd := newCmd(e.Options())

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true

	err := cmd.Execute()
	return out.String(), err
}
