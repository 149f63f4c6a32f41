package worker

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/application/ticket/usecases"
	"github.com/ufobot/ufobot/internal/infrastructure/scheduler"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
	"github.com/ufobot/ufobot/internal/shared/version"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run background maintenance until interrupted",
		Long:  `Initialise the schema and run the ticket retention cleanup on the configured schedule until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return bootstrap.Run(ctx, opts, true, func(rt *bootstrap.Runtime) error {
				return run(ctx, rt)
			})
		},
	}
}

func run(ctx context.Context, rt *bootstrap.Runtime) error {
	log := rt.Logger.Named("worker")
	log.Infow("starting worker", "version", version.String(), "database", rt.Config.Database.Path)

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	tickets := rt.Config.Tickets
	job := usecases.NewCleanupTicketsJob(rt.Store.Tickets, tickets.RetentionDays, log)

	if tickets.CleanupCron != "" {
		err = manager.RegisterTicketCleanupCron(job, tickets.CleanupCron)
	} else {
		err = manager.RegisterTicketCleanup(job, tickets.CleanupInterval)
	}
	if err != nil {
		return fmt.Errorf("failed to register ticket cleanup: %w", err)
	}

	manager.Start()
	<-ctx.Done()

	log.Infow("shutting down worker")
	return manager.Stop()
}
