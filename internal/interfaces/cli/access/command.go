package access

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	domain "github.com/ufobot/ufobot/internal/domain/access"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func parseUserID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return id, nil
}

// NewAdminCommand manages the admin allowlist.
func NewAdminCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin allowlist",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <user-id>",
			Short: "Allow a user to run admin commands",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					added, err := rt.Store.Admins.Add(cmd.Context(), userID)
					if err != nil {
						return err
					}
					if !added {
						fmt.Fprintf(cmd.OutOrStdout(), "User %d is already an admin\n", userID)
						return nil
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✅ User %d added to admins\n", userID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "remove <user-id>",
			Short: "Revoke admin rights",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					removed, err := rt.Store.Admins.Remove(cmd.Context(), userID)
					if err != nil {
						return err
					}
					if !removed {
						return fmt.Errorf("user %d is not an admin", userID)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✅ User %d removed from admins\n", userID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List admins",
			RunE: func(cmd *cobra.Command, args []string) error {
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					admins, err := rt.Store.Admins.List(cmd.Context())
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "USER\tADDED AT")
					for _, a := range admins {
						fmt.Fprintf(w, "%d\t%s\n", a.UserID, a.AddedAt.Format("2006-01-02 15:04"))
					}
					return w.Flush()
				})
			},
		},
	)

	return cmd
}

// NewBanCommand manages the ban list.
func NewBanCommand(opts *bootstrap.Options) *cobra.Command {
	var (
		reason   string
		bannedBy int64
	)

	addCmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Ban a user from opening tickets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseUserID(args[0])
			if err != nil {
				return err
			}

			ban := domain.Ban{UserID: userID}
			if reason != "" {
				ban.Reason = &reason
			}
			if cmd.Flags().Changed("by") {
				ban.BannedBy = &bannedBy
			}

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				added, err := rt.Store.Bans.Ban(cmd.Context(), ban)
				if err != nil {
					return err
				}
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "User %d is already banned\n", userID)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ User %d banned\n", userID)
				return nil
			})
		},
	}
	addCmd.Flags().StringVar(&reason, "reason", "", "Reason for the ban")
	addCmd.Flags().Int64Var(&bannedBy, "by", 0, "User id of the issuing admin")

	cmd := &cobra.Command{
		Use:   "ban",
		Short: "Manage the ban list",
	}

	cmd.AddCommand(
		addCmd,
		&cobra.Command{
			Use:   "remove <user-id>",
			Short: "Lift a ban",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					removed, err := rt.Store.Bans.Unban(cmd.Context(), userID)
					if err != nil {
						return err
					}
					if !removed {
						return fmt.Errorf("user %d is not banned", userID)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "✅ User %d unbanned\n", userID)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show <user-id>",
			Short: "Show why a user is banned",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := parseUserID(args[0])
				if err != nil {
					return err
				}
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					ban, err := rt.Store.Bans.Get(cmd.Context(), userID)
					if errors.Is(err, domain.ErrBanNotFound) {
						return fmt.Errorf("user %d is not banned", userID)
					}
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), formatBan(*ban))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List banned users",
			RunE: func(cmd *cobra.Command, args []string) error {
				return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
					bans, err := rt.Store.Bans.List(cmd.Context())
					if err != nil {
						return err
					}
					for _, b := range bans {
						fmt.Fprintln(cmd.OutOrStdout(), formatBan(b))
					}
					return nil
				})
			},
		},
	)

	return cmd
}

func formatBan(b domain.Ban) string {
	reason, by := "-", "-"
	if b.Reason != nil {
		reason = *b.Reason
	}
	if b.BannedBy != nil {
		by = strconv.FormatInt(*b.BannedBy, 10)
	}
	return fmt.Sprintf("%d  banned %s by %s: %s", b.UserID, b.BannedAt.Format("2006-01-02 15:04"), by, reason)
}
