package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
)

func newOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <name>",
		Short: "Open a game's directory in the system file browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				if err := svc.OpenGameDir(cmd.Context(), args[0]); err != nil {
					return err
				}
				dir, err := svc.GameDir(args[0])
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"name": args[0], "path": dir})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", dir)
				return nil
			})
		},
	}
}
