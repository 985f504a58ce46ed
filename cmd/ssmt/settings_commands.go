package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
	"ssmt/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change launcher-wide settings",
	}
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				value, err := svc.LoadSettings(cmd.Context())
				if err != nil {
					return err
				}
				return printSettings(cmd, ctx, value)
			})
		},
	})
	settingsCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long:  "Change one setting. Valid keys: " + fmt.Sprint(settings.Keys()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				value, err := svc.ApplySetting(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printSettings(cmd, ctx, value)
			})
		},
	})
	return settingsCmd
}

func printSettings(cmd *cobra.Command, ctx *commandContext, value settings.Settings) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, value)
	}
	rows := [][]string{
		{"bgType", value.BackgroundType},
		{"bgImage", value.BackgroundImage},
		{"bgVideo", value.BackgroundVideo},
		{"sidebarOpacity", strconv.FormatFloat(value.SidebarOpacity, 'g', -1, 64)},
		{"sidebarBlur", strconv.Itoa(value.SidebarBlur)},
		{"contentOpacity", strconv.FormatFloat(value.ContentOpacity, 'g', -1, 64)},
		{"contentBlur", strconv.Itoa(value.ContentBlur)},
		{"cacheDir", value.CacheDir},
		{"currentConfigName", value.CurrentConfigName},
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]column{left("Key"), left("Value")}, rows))
	return nil
}
