package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/interfaces/cli/access"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
	"github.com/ufobot/ufobot/internal/interfaces/cli/legacy"
	"github.com/ufobot/ufobot/internal/interfaces/cli/migrate"
	"github.com/ufobot/ufobot/internal/interfaces/cli/settings"
	"github.com/ufobot/ufobot/internal/interfaces/cli/stats"
	"github.com/ufobot/ufobot/internal/interfaces/cli/tickets"
	"github.com/ufobot/ufobot/internal/interfaces/cli/worker"
	"github.com/ufobot/ufobot/internal/shared/version"
)

func main() {
	opts := &bootstrap.Options{}

	rootCmd := &cobra.Command{
		Use:           "ufobot",
		Short:         "UFO sighting bot storage and maintenance",
		Long:          `ufobot manages the bot's SQLite store: schema migrations, tickets, guild configuration, the admin allowlist, the ban list and background cleanup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.AddFlags(rootCmd)

	rootCmd.AddCommand(
		migrate.NewCommand(opts),
		worker.NewCommand(opts),
		stats.NewCommand(opts),
		tickets.NewCommand(opts),
		settings.NewCommand(opts),
		access.NewAdminCommand(opts),
		access.NewBanCommand(opts),
		legacy.NewCommand(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print the build version",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
