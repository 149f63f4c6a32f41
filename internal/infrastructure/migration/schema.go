// Package migration creates and inspects the bot's storage schema.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/ufobot/ufobot/internal/shared/db"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

//go:embed scripts/*.sql
var scripts embed.FS

// versionTable is the bookkeeping table goose maintains by default.
const versionTable = "goose_db_version"

// Tables lists every table the schema creates.
var Tables = []string{
	"guild_config",
	"global_settings",
	"user_reactions",
	"admin_users",
	"banned_users",
	"tickets",
}

// Indexes lists every secondary index the schema creates.
var Indexes = []string{
	"idx_user_reactions_guild",
	"idx_tickets_user",
	"idx_tickets_status",
	"idx_tickets_guild",
}

// MigrationStatus describes one migration script and whether it has run.
type MigrationStatus struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

func newProvider(sqlDB *sql.DB, opts ...goose.ProviderOption) (*goose.Provider, error) {
	fsys, err := fs.Sub(scripts, "scripts")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, sqlDB, fsys, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// InitSchema brings the schema up to date. It is idempotent and adopts
// databases written by earlier releases without touching existing rows.
// Tables or indexes that went missing after the version was recorded are
// recreated by replaying the scripts unversioned; they only use IF NOT EXISTS.
func InitSchema(ctx context.Context, guard *db.Guard, log logger.Interface) error {
	return guard.WithSQLDB(ctx, func(sqlDB *sql.DB) error {
		provider, err := newProvider(sqlDB)
		if err != nil {
			return err
		}

		results, err := provider.Up(ctx)
		if err != nil {
			log.Errorw("schema migration failed", "error", err)
			return fmt.Errorf("failed to initialize schema: %w", err)
		}

		for _, r := range results {
			log.Infow("applied migration",
				"version", r.Source.Version,
				"path", r.Source.Path,
				"duration", r.Duration,
			)
		}

		missing, err := missingObjects(ctx, sqlDB)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			log.Warnw("recreating missing schema objects", "missing", missing)
			if err := replayScripts(ctx, sqlDB); err != nil {
				log.Errorw("schema repair failed", "error", err)
				return fmt.Errorf("failed to recreate schema objects: %w", err)
			}
		}

		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		log.Infow("schema ready", "version", version, "applied", len(results))
		return nil
	})
}

// replayScripts runs every embedded script without reading or writing the
// version table.
func replayScripts(ctx context.Context, sqlDB *sql.DB) error {
	provider, err := newProvider(sqlDB, goose.WithDisableVersioning(true))
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// versionTableExists reports whether goose has ever run against sqlDB.
func versionTableExists(ctx context.Context, sqlDB *sql.DB) (bool, error) {
	var n int
	err := sqlDB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		versionTable,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to look up version table: %w", err)
	}
	return n > 0, nil
}

// SchemaVersion returns the highest applied migration version, or 0 for a
// database that has never been migrated.
func SchemaVersion(ctx context.Context, guard *db.Guard) (int64, error) {
	var version int64
	err := guard.WithSQLDB(ctx, func(sqlDB *sql.DB) error {
		exists, err := versionTableExists(ctx, sqlDB)
		if err != nil || !exists {
			return err
		}

		provider, err := newProvider(sqlDB)
		if err != nil {
			return err
		}
		version, err = provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		return nil
	})
	return version, err
}

// SchemaStatus reports every embedded migration in version order.
func SchemaStatus(ctx context.Context, guard *db.Guard) ([]MigrationStatus, error) {
	var out []MigrationStatus
	err := guard.WithSQLDB(ctx, func(sqlDB *sql.DB) error {
		provider, err := newProvider(sqlDB)
		if err != nil {
			return err
		}

		exists, err := versionTableExists(ctx, sqlDB)
		if err != nil {
			return err
		}
		if !exists {
			for _, src := range provider.ListSources() {
				out = append(out, MigrationStatus{Version: src.Version, Path: src.Path})
			}
			return nil
		}

		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		out = make([]MigrationStatus, 0, len(statuses))
		for _, s := range statuses {
			out = append(out, MigrationStatus{
				Version:   s.Source.Version,
				Path:      s.Source.Path,
				Applied:   s.State == goose.StateApplied,
				AppliedAt: s.AppliedAt,
			})
		}
		return nil
	})
	return out, err
}

// VerifySchema returns the names of expected tables and indexes that are
// missing from the database. An empty result means the schema is complete.
func VerifySchema(ctx context.Context, guard *db.Guard) ([]string, error) {
	var missing []string
	err := guard.WithSQLDB(ctx, func(sqlDB *sql.DB) error {
		var err error
		missing, err = missingObjects(ctx, sqlDB)
		return err
	})
	return missing, err
}

func missingObjects(ctx context.Context, sqlDB *sql.DB) ([]string, error) {
	present := make(map[string]bool)
	rows, err := sqlDB.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type IN ('table', 'index')")
	if err != nil {
		return nil, fmt.Errorf("failed to list schema objects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema object: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range append(append([]string{}, Tables...), Indexes...) {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}
