package settings

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ufobot/ufobot/internal/domain/guild"
	"github.com/ufobot/ufobot/internal/domain/setting"
	"github.com/ufobot/ufobot/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Guild channels and global settings",
	}

	cmd.AddCommand(
		newGuildCommand(opts),
		newGlobalLogCommand(opts),
	)

	return cmd
}

func newGuildCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guild",
		Short: "Per-guild channel configuration",
	}
	cmd.AddCommand(newGuildSetCommand(opts), newGuildListCommand(opts))
	return cmd
}

func newGuildSetCommand(opts *bootstrap.Options) *cobra.Command {
	var channel, logChannel, supportChannel int64

	cmd := &cobra.Command{
		Use:   "set <guild-id>",
		Short: "Set channels for a guild; unset flags keep their stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			guildID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid guild id %q", args[0])
			}

			var patch guild.ConfigPatch
			if cmd.Flags().Changed("channel") {
				patch.ChannelID = &channel
			}
			if cmd.Flags().Changed("log-channel") {
				patch.LogChannelID = &logChannel
			}
			if cmd.Flags().Changed("support-channel") {
				patch.SupportChannelID = &supportChannel
			}

			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				if err := rt.Store.GuildConfigs.Set(cmd.Context(), guildID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Guild %d updated\n", guildID)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&channel, "channel", 0, "Sighting report channel id")
	cmd.Flags().Int64Var(&logChannel, "log-channel", 0, "Log channel id")
	cmd.Flags().Int64Var(&supportChannel, "support-channel", 0, "Support ticket channel id")

	return cmd
}

func newGuildListCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured guilds",
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				configs, err := rt.Store.GuildConfigs.List(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "GUILD\tCHANNEL\tLOG CHANNEL\tSUPPORT CHANNEL")
				for _, c := range configs {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
						c.GuildID, formatID(c.ChannelID), formatID(c.LogChannelID), formatID(c.SupportChannelID))
				}
				return w.Flush()
			})
		},
	}
}

func newGlobalLogCommand(opts *bootstrap.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "global-log [channel-id]",
		Short: "Show or set the channel that receives logs from every guild",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return bootstrap.Run(cmd.Context(), opts, true, func(rt *bootstrap.Runtime) error {
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					channelID, err := strconv.ParseInt(args[0], 10, 64)
					if err != nil {
						return fmt.Errorf("invalid channel id %q", args[0])
					}
					if err := rt.Store.GlobalSettings.SetInt64(cmd.Context(), setting.KeyGlobalLogChannelID, channelID); err != nil {
						return err
					}
					fmt.Fprintf(out, "✅ Global log channel set to %d\n", channelID)
					return nil
				}

				channelID, err := rt.Store.GlobalSettings.GetInt64(cmd.Context(), setting.KeyGlobalLogChannelID)
				if errors.Is(err, setting.ErrSettingNotFound) {
					fmt.Fprintln(out, "Global log channel is not set.")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Global log channel: %d\n", channelID)
				return nil
			})
		},
	}
}

func formatID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
