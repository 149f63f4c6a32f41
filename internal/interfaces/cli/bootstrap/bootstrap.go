// Package bootstrap wires configuration, logging and the store for the
// operator commands.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/infrastructure/config"
	"github.com/ufobot/ufobot/internal/infrastructure/database"
	"github.com/ufobot/ufobot/internal/infrastructure/migration"
	"github.com/ufobot/ufobot/internal/infrastructure/repository"
	"github.com/ufobot/ufobot/internal/shared/biztime"
	"github.com/ufobot/ufobot/internal/shared/logger"
)

// Options are the flags shared by every command.
type Options struct {
	Env        string
	ConfigPath string
	Verbose    bool
}

// AddFlags registers the shared flags as persistent flags of cmd.
func (o *Options) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.Env, "env", "e", "", "Environment (development, production, debug)")
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "Log at debug level regardless of logger.level")
}

// Runtime is everything a command needs once started.
type Runtime struct {
	Config *config.Config
	Logger logger.Interface
	Store  *repository.Store
}

// Open loads configuration, initialises logging and the business timezone,
// and opens the database. With initSchema, pending migrations are applied
// before the store is returned.
func Open(ctx context.Context, opts *Options, initSchema bool) (*Runtime, error) {
	cfg, err := config.Load(opts.Env, opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if opts.Verbose {
		logger.SetLevel(slog.LevelDebug)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	guard, err := database.OpenGuard(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if initSchema {
		if err := migration.InitSchema(ctx, guard, log); err != nil {
			_ = guard.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return &Runtime{
		Config: cfg,
		Logger: log,
		Store:  repository.NewStore(guard, log),
	}, nil
}

func (r *Runtime) Close() error {
	return r.Store.Close()
}

// Run opens a runtime, hands it to fn and closes it afterwards.
func Run(ctx context.Context, opts *Options, initSchema bool, fn func(rt *Runtime) error) error {
	rt, err := Open(ctx, opts, initSchema)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			rt.Logger.Warnw("failed to close database", "error", err)
		}
	}()
	defer logger.Sync()

	return fn(rt)
}
