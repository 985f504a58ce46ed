package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the per-user game library",
	}
	libraryCmd.AddCommand(&cobra.Command{
		Use:   "bootstrap",
		Short: "Create the per-user library from the bundled one if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				result, err := svc.EnsureGlobalLibrary(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{
						"path":    result.Path,
						"created": result.Created,
						"source":  result.Source,
						"copied":  result.Copied,
						"skipped": result.Skipped,
						"failed":  len(result.Errors),
					})
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				if !result.Created {
					fmt.Fprintln(out, renderStatusLine("Library", statusInfo, "already present at "+result.Path, colorize))
					return nil
				}
				kind := statusOK
				if len(result.Errors) > 0 {
					kind = statusWarn
				}
				msg := fmt.Sprintf("created %s (copied %d, skipped %d, failed %d)",
					result.Path, result.Copied, result.Skipped, len(result.Errors))
				fmt.Fprintln(out, renderStatusLine("Library", kind, msg, colorize))
				for _, copyErr := range result.Errors {
					fmt.Fprintln(out, renderStatusLine("Copy", statusError, copyErr.Error(), colorize))
				}
				return nil
			})
		},
	})
	return libraryCmd
}
