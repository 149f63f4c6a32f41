package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ufobot/ufobot/internal/shared/config"
)

func TestOpen_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "ufo_bot.db")

	guard, err := OpenGuard(&config.DatabaseConfig{Path: path, BusyTimeoutMS: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Close() })

	err = guard.WithConnection(context.Background(), func(tx *gorm.DB) error {
		return tx.Exec("CREATE TABLE probe (id INTEGER PRIMARY KEY)").Error
	})
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(&config.DatabaseConfig{})
	assert.Error(t, err)
}
