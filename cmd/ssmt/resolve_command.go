package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [hint]",
		Short: "Resolve a bundled resource path, or the bundled Games library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				var hint, path string
				if len(args) == 0 {
					path = svc.ResolveLibrary(cmd.Context())
				} else {
					hint = args[0]
					resolved, err := svc.ResolveResource(cmd.Context(), hint)
					if err != nil {
						return err
					}
					path = resolved
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]string{"hint": hint, "path": path})
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}
}
