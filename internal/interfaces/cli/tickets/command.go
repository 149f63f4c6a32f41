package tickets

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/application/ticket/dto"
	"github.com/ufobot/ufobot/internal/application/ticket/usecases"
	"github.com/ufobot/ufobot/internal/domain/ticket"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
	"github.com/ufobot/ufobot/internal/shared/biztime"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Inspect and maintain support tickets",
	}

	cmd.AddCommand(
		newListCommand(opts),
		newShowCommand(opts),
		newSubmitCommand(opts),
		newRespondCommand(opts),
		newStatsCommand(opts),
		newUpdateCommand(opts),
		newCloseCommand(opts),
		newDeleteCommand(opts),
		newCleanupCommand(opts),
	)

	return cmd
}

func newListCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		status  string
		userID  int64
		guildID int64
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ticket.Filter{Limit: limit}
			if status == ticket.ClosedPrefix {
				filter.Closed = true
			} else if status != "" {
				st, err := ticket.ParseStatus(status)
				if err != nil {
					return fmt.Errorf("invalid --status %q: %w", status, err)
				}
				filter.Status = &st
			}
			if cmd.Flags().Changed("user") {
				filter.UserID = &userID
			}
			if cmd.Flags().Changed("guild") {
				filter.GuildID = &guildID
			}

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				list, err := rt.Store.Tickets.List(cmd.Context(), filter)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No tickets found.")
					return nil
				}

				now := biztime.NowUTC()
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTATUS\tUSER\tGUILD\tCREATED\tMESSAGE")
				for _, t := range list {
					fmt.Fprintf(w, "%s\t%s\t%s (%d)\t%s\t%s\t%s\n",
						t.ID(),
						t.Status(),
						t.UserName(), t.UserID(),
						t.GuildName(),
						humanize.RelTime(t.CreatedAt(), now, "ago", "from now"),
						dto.Preview(t.Message()),
					)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tickets with this status (open, closed for any closer, closed_by_<actor>)")
	cmd.Flags().Int64Var(&userID, "user", 0, "Only tickets opened by this user id")
	cmd.Flags().Int64Var(&guildID, "guild", 0, "Only tickets from this guild id (0 for direct messages)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of tickets to show")

	return cmd
}

func newShowCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ticket-id>",
		Short: "Show one ticket in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				t, err := rt.Store.Tickets.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				d := dto.ToTicketDTO(t)
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Ticket %s\n", d.TicketID)
				fmt.Fprintf(out, "  Status:   %s\n", d.Status)
				fmt.Fprintf(out, "  User:     %s (%d)\n", d.UserName, d.UserID)
				fmt.Fprintf(out, "  Guild:    %s (%d)\n", d.GuildName, d.GuildID)
				fmt.Fprintf(out, "  Created:  %s\n", d.CreatedAt.Format("2006-01-02 15:04:05 MST"))
				fmt.Fprintf(out, "  Message:  %s\n", d.Message)
				if d.AdminResponse != nil {
					responder := "-"
					if d.AdminResponder != nil {
						responder = *d.AdminResponder
					}
					fmt.Fprintf(out, "  Response: %s (by %s)\n", *d.AdminResponse, responder)
				}
				if d.ClosedTimestamp != nil {
					fmt.Fprintf(out, "  Closed:   %s\n", d.ClosedTimestamp.Format("2006-01-02 15:04:05 MST"))
				}
				return nil
			})
		},
	}
}

func newUpdateCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		message   string
		response  string
		responder string
		status    string
	)

	cmd := &cobra.Command{
		Use:   "update <ticket-id>",
		Short: "Edit fields of a ticket",
		Long: `Edit fields of a ticket. Only the flags given are changed.
A closed ticket keeps its status; moving an open ticket to a closed
status also records who closed it and when.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := biztime.NowUTC()

			var patch ticket.Patch
			if cmd.Flags().Changed("message") {
				patch.Message = &message
			}
			if cmd.Flags().Changed("response") {
				patch.AdminResponse = &response
				patch.ResponseTimestamp = &now
			}
			if cmd.Flags().Changed("responder") {
				patch.AdminResponder = &responder
			}
			if cmd.Flags().Changed("status") {
				st, err := ticket.ParseStatus(status)
				if err != nil {
					return fmt.Errorf("invalid --status %q: %w", status, err)
				}
				patch.Status = &st
				if st.IsClosed() {
					actor := st.Actor()
					patch.ClosedBy = &actor
					patch.ClosedTimestamp = &now
				}
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to update: pass --message, --response, --responder or --status")
			}

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				updated, err := rt.Store.Tickets.Update(cmd.Context(), args[0], patch)
				if err != nil {
					if errors.Is(err, ticket.ErrInvalidTransition) {
						return fmt.Errorf("ticket %s is closed and its status cannot change", args[0])
					}
					return err
				}
				if !updated {
					return fmt.Errorf("ticket %s not found", args[0])
				}

				rt.Logger.Infow("ticket updated from cli", "ticket_id", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Ticket %s updated\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "Replace the ticket message")
	cmd.Flags().StringVar(&response, "response", "", "Set the admin response")
	cmd.Flags().StringVar(&responder, "responder", "", "Set the admin responder name")
	cmd.Flags().StringVar(&status, "status", "", "Set the status (open, closed, closed_by_<actor>)")

	return cmd
}

func newCloseCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		by        string
		response  string
		responder string
	)

	cmd := &cobra.Command{
		Use:   "close <ticket-id>",
		Short: "Close an open ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				closed, err := rt.Store.Tickets.Close(cmd.Context(), args[0], ticket.CloseParams{
					ClosedBy:  by,
					Response:  response,
					Responder: responder,
				})
				if err != nil {
					if errors.Is(err, ticket.ErrTicketClosed) {
						return fmt.Errorf("ticket %s is already closed", args[0])
					}
					return err
				}
				if !closed {
					return fmt.Errorf("ticket %s not found", args[0])
				}

				rt.Logger.Infow("ticket closed from cli", "ticket_id", args[0], "closed_by", by)
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Ticket %s closed\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&by, "by", ticket.DefaultCloser, "Actor recorded in the closed_by_<actor> status")
	cmd.Flags().StringVar(&response, "response", "", "Response text to record")
	cmd.Flags().StringVar(&responder, "responder", "", "Name of the responder")

	return cmd
}

func newDeleteCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <ticket-id>",
		Short: "Delete a ticket permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				deleted, err := rt.Store.Tickets.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("ticket %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Ticket %s deleted\n", args[0])
				return nil
			})
		},
	}
}

func newCleanupCommand(opts *bootstrap.Options) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete closed tickets older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				retention := rt.Config.Tickets.RetentionDays
				if cmd.Flags().Changed("days") {
					if days < 0 {
						return fmt.Errorf("--days must not be negative")
					}
					retention = days
				}

				job := usecases.NewCleanupTicketsJob(rt.Store.Tickets, retention, rt.Logger)
				deleted, err := job.Execute(cmd.Context())
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "✅ Removed %d closed tickets older than %d days\n", deleted, retention)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (default: tickets.retention_days)")

	return cmd
}
