package stats

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show row counts for every store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				counts, err := rt.Store.Stats.Counts(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(counts)
				}

				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				rows := []struct {
					label string
					value int64
				}{
					{"Guild configs", counts.GuildConfigs},
					{"Global settings", counts.Settings},
					{"Reaction counters", counts.ReactionRows},
					{"Reactions counted", counts.TotalReactions},
					{"Admins", counts.Admins},
					{"Banned users", counts.Bans},
					{"Tickets", counts.Tickets},
					{"  open", counts.OpenTickets},
					{"  closed", counts.ClosedTickets()},
				}
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\n", r.label, humanize.Comma(r.value))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")

	return cmd
}
