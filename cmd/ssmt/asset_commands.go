package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ssmt/internal/assets"
	"ssmt/internal/catalog"
	"ssmt/internal/launcher"
)

func newAssetCommand(ctx *commandContext) *cobra.Command {
	assetCmd := &cobra.Command{
		Use:   "asset",
		Short: "Replace game icons and backgrounds",
	}
	assetCmd.AddCommand(newAssetIconCommand(ctx))
	assetCmd.AddCommand(newAssetBackgroundCommand(ctx))
	assetCmd.AddCommand(newAssetUpdateCommand(ctx))
	return assetCmd
}

func newAssetIconCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "icon <name> <file>",
		Short: "Replace a game's icon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				outcome, err := svc.SetIcon(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return printOutcome(cmd, ctx, outcome)
			})
		},
	}
}

func newAssetBackgroundCommand(ctx *commandContext) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "background <name> <file>",
		Short: "Replace a game's background with a local image or video",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				outcome, err := svc.SetBackground(cmd.Context(), args[0], args[1], kind)
				if err != nil {
					return err
				}
				return printOutcome(cmd, ctx, outcome)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", catalog.KindImage, "Background kind (image or video)")
	return cmd
}

func newAssetUpdateCommand(ctx *commandContext) *cobra.Command {
	var kind string
	var preset string
	cmd := &cobra.Command{
		Use:   "update <name>",
		Short: "Download the official background for a game preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				outcome, err := svc.UpdateBackgroundFromRemote(cmd.Context(), args[0], preset, kind)
				if err != nil {
					return err
				}
				return printOutcome(cmd, ctx, outcome)
			})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", catalog.KindImage, "Background kind (image or video)")
	cmd.Flags().StringVar(&preset, "preset", "", "Game preset to fetch (defaults to the game's configured preset)")
	return cmd
}

func printOutcome(cmd *cobra.Command, ctx *commandContext, outcome assets.Outcome) error {
	if ctx.jsonOutput() {
		return writeJSON(cmd, outcome)
	}
	out := cmd.OutOrStdout()
	writeOutcome(out, outcome, shouldColorize(out))
	return nil
}

func writeOutcome(out io.Writer, outcome assets.Outcome, colorize bool) {
	kind := statusOK
	if !outcome.Cleanup.Clean() {
		kind = statusWarn
	}
	msg := fmt.Sprintf("%s %s (%d bytes from %s)", outcome.Game, outcome.Target, outcome.Bytes, outcome.Source)
	if outcome.Normalized {
		msg += ", normalized to PNG"
	}
	fmt.Fprintln(out, renderStatusLine(titleWord(outcome.Kind), kind, msg, colorize))
	for _, removed := range outcome.Cleanup.Removed {
		fmt.Fprintln(out, renderStatusLine("Removed", statusInfo, removed, colorize))
	}
	for _, failure := range outcome.Cleanup.Errors {
		fmt.Fprintln(out, renderStatusLine("Cleanup", statusWarn, fmt.Sprintf("%s: %v", failure.Path, failure.Error), colorize))
	}
}
