package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssmt/internal/gameconfig"
	"ssmt/internal/launcher"
)

func newGameCommand(ctx *commandContext) *cobra.Command {
	gameCmd := &cobra.Command{
		Use:   "game",
		Short: "Inspect and edit a single game",
	}
	gameCmd.AddCommand(newGameConfigCommand(ctx))
	gameCmd.AddCommand(newGameCreateCommand(ctx))
	gameCmd.AddCommand(newGameDeleteCommand(ctx))
	gameCmd.AddCommand(newGamePresetCommand(ctx))
	return gameCmd
}

func newGameConfigCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "config <name>",
		Short: "Print a game's Config.json with defaults applied",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				cfg, err := svc.LoadConfig(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				data, err := gameconfig.Encode(cfg)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			})
		},
	}
}

func newGameCreateCommand(ctx *commandContext) *cobra.Command {
	var preset string
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a game directory with a default Config.json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				name := args[0]
				cfg := gameconfig.Default()
				if preset != "" {
					cfg.Basic.GamePreset = preset
				}
				if err := svc.CreateGame(cmd.Context(), name, cfg); err != nil {
					return err
				}
				dir, err := svc.GameDir(name)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"name": name, "path": dir, "config": cfg})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(name, statusOK, "created at "+dir, shouldColorize(out)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "Initial game preset")
	return cmd
}

func newGameDeleteCommand(ctx *commandContext) *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a game directory and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !confirm {
				return fmt.Errorf("refusing to delete %q without --yes", name)
			}
			return ctx.withService(func(svc *launcher.Service) error {
				if err := svc.DeleteGame(cmd.Context(), name); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"name": name, "deleted": true})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(name, statusOK, "deleted", shouldColorize(out)))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm deletion")
	return cmd
}

func newGamePresetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preset <name> <preset>",
		Short: "Set the game preset used for remote backgrounds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				cfg, err := svc.SetPreset(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, cfg)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(args[0], statusOK, "preset "+cfg.Basic.GamePreset, shouldColorize(out)))
				return nil
			})
		},
	}
}
