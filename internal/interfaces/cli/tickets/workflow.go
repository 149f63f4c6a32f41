package tickets

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/application/ticket/usecases"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func newSubmitCommand(opts *bootstrap.Options) *cobra.Command {
	var command usecases.SubmitTicketCommand

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Open a ticket on behalf of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				uc := usecases.NewSubmitTicketUseCase(
					rt.Store.Tickets,
					rt.Store.Bans,
					rt.Store.GuildConfigs,
					rt.Config.Tickets.MaxMessageLength,
					rt.Logger,
				)

				result, err := uc.Execute(cmd.Context(), command)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✅ Ticket %s opened, notify channel %d\n",
					result.TicketID, result.SupportChannelID)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&command.UserID, "user", 0, "User id of the reporter")
	cmd.Flags().StringVar(&command.UserName, "name", "", "Display name of the reporter")
	cmd.Flags().Int64Var(&command.GuildID, "guild", 0, "Guild id (0 for a direct message)")
	cmd.Flags().StringVar(&command.GuildName, "guild-name", "", "Guild name")
	cmd.Flags().StringVarP(&command.Message, "message", "m", "", "Ticket text")

	return cmd
}

func newRespondCommand(opts *bootstrap.Options) *cobra.Command {
	var command usecases.RespondTicketCommand

	cmd := &cobra.Command{
		Use:   "respond <ticket-id>",
		Short: "Answer a ticket as an admin and close it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command.TicketID = args[0]

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				uc := usecases.NewRespondTicketUseCase(rt.Store.Tickets, rt.Store.Admins, rt.Logger)

				result, err := uc.Execute(cmd.Context(), command)
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✅ Ticket %s from %s (%d) is now %s\n",
					result.TicketID, result.UserName, result.UserID, result.Status)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&command.ResponderID, "admin", 0, "User id of the responding admin")
	cmd.Flags().StringVar(&command.ResponderName, "name", "", "Display name of the responding admin")
	cmd.Flags().StringVarP(&command.Response, "response", "r", "", "Response text")

	return cmd
}

func newStatsCommand(opts *bootstrap.Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise open and closed tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				result, err := usecases.NewTicketStatsUseCase(rt.Store.Tickets, rt.Logger).Execute(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(result)
				}

				fmt.Fprintf(out, "Tickets: %d total, %d open, %d closed\n", result.Total, result.Open, result.Closed)
				if len(result.RecentOpen) > 0 {
					fmt.Fprintln(out, "\nRecent open tickets:")
					for _, t := range result.RecentOpen {
						fmt.Fprintf(out, "  %s  %s: %s\n", t.TicketID, t.UserName, t.Preview)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")

	return cmd
}
