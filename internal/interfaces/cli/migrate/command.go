package migrate

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/infrastructure/migration"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tools",
		Long:  `Apply the embedded schema migrations, inspect their status and verify that every table and index exists.`,
	}

	cmd.AddCommand(
		newUpCommand(opts),
		newStatusCommand(opts),
		newVerifyCommand(opts),
	)

	return cmd
}

func newUpCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Long:  `Bring the schema up to date. Safe to run repeatedly and against databases created by earlier releases.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, false, func(rt *bootstrap.Runtime) error {
				rt.Logger.Infow("running up migrations", "path", rt.Config.Database.Path)

				if err := migration.InitSchema(cmd.Context(), rt.Store.Guard, rt.Logger); err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}

				version, err := migration.SchemaVersion(cmd.Context(), rt.Store.Guard)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Schema is at version %d\n", version)
				return nil
			})
		},
	}
}

func newStatusCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, false, func(rt *bootstrap.Runtime) error {
				version, err := migration.SchemaVersion(cmd.Context(), rt.Store.Guard)
				if err != nil {
					return fmt.Errorf("failed to get migration version: %w", err)
				}

				statuses, err := migration.SchemaStatus(cmd.Context(), rt.Store.Guard)
				if err != nil {
					return fmt.Errorf("failed to get detailed status: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Migration Status:\n")
				fmt.Fprintf(out, "  Database:        %s\n", rt.Config.Database.Path)
				fmt.Fprintf(out, "  Current Version: %d\n\n", version)

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
				for _, s := range statuses {
					state, appliedAt := "pending", "-"
					if s.Applied {
						state = "applied"
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, state, appliedAt, s.Path)
				}
				return w.Flush()
			})
		},
	}
}

func newVerifyCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every table and index exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, false, func(rt *bootstrap.Runtime) error {
				missing, err := migration.VerifySchema(cmd.Context(), rt.Store.Guard)
				if err != nil {
					return err
				}
				if len(missing) > 0 {
					return fmt.Errorf("schema is incomplete, missing: %s", strings.Join(missing, ", "))
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✅ Schema OK (%d tables, %d indexes)\n",
					len(migration.Tables), len(migration.Indexes))
				return nil
			})
		},
	}
}
