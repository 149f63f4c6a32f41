package legacy

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/application/legacy"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legacy",
		Short: "Convert between the database and the old JSON data files",
	}

	cmd.AddCommand(newExportCommand(opts), newImportCommand(opts))

	return cmd
}

func newShim(rt *bootstrap.Runtime) *legacy.Shim {
	s := rt.Store
	return legacy.NewShim(s.GuildConfigs, s.GlobalSettings, s.Reactions, s.Admins, rt.Logger)
}

func newExportCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:       "export <config|reactions|admins>",
		Short:     "Print stored data in the old JSON file format",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"config", "reactions", "admins"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				shim := newShim(rt)
				ctx := cmd.Context()

				var (
					data any
					err  error
				)
				switch args[0] {
				case "config":
					data, err = shim.LoadConfig(ctx)
				case "reactions":
					data, err = shim.LoadReactions(ctx)
				case "admins":
					data, err = shim.LoadAuthorizedUsers(ctx)
				}
				if err != nil {
					return err
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(data)
			})
		},
	}
}

func newImportCommand(opts *bootstrap.Options) *cobra.Command {
	var configFile, reactionsFile, adminsFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load old JSON data files into the database",
		Long: `Read config.json, reactions.json and authorized_users.json style files and write
them through the stores. Reaction counts are set to the file's values and the admin
allowlist is made equal to the file's list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configFile == "" && reactionsFile == "" && adminsFile == "" {
				return fmt.Errorf("nothing to import: pass --config-file, --reactions-file or --admins-file")
			}

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				shim := newShim(rt)
				ctx := cmd.Context()
				out := cmd.OutOrStdout()

				if configFile != "" {
					var cfg legacy.Config
					if err := importFile(ctx, configFile, &cfg, func(ctx context.Context) error {
						return shim.SaveConfig(ctx, &cfg)
					}); err != nil {
						return err
					}
					fmt.Fprintf(out, "✅ Imported %d guild configurations\n", len(cfg.Guilds))
				}

				if reactionsFile != "" {
					var reactions legacy.Reactions
					if err := importFile(ctx, reactionsFile, &reactions, func(ctx context.Context) error {
						return shim.SaveReactions(ctx, reactions)
					}); err != nil {
						return err
					}
					fmt.Fprintf(out, "✅ Imported reactions for %d guilds\n", len(reactions))
				}

				if adminsFile != "" {
					var auth legacy.AuthorizedUsers
					if err := importFile(ctx, adminsFile, &auth, func(ctx context.Context) error {
						return shim.SaveAuthorizedUsers(ctx, &auth)
					}); err != nil {
						return err
					}
					fmt.Fprintf(out, "✅ Imported %d admin users\n", len(auth.AdminUsers))
				}

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&configFile, "config-file", "", "Path to config.json")
	cmd.Flags().StringVar(&reactionsFile, "reactions-file", "", "Path to reactions.json")
	cmd.Flags().StringVar(&adminsFile, "admins-file", "", "Path to authorized_users.json")

	return cmd
}

func importFile(ctx context.Context, path string, into any, save func(context.Context) error) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return save(ctx)
}
