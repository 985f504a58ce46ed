package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
	"ssmt/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, tools, and the remote catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				results := svc.Preflight(cmd.Context(), offline)
				failed := preflight.Failed(results)
				if ctx.jsonOutput() {
					if err := writeJSON(cmd, results); err != nil {
						return err
					}
				} else {
					out := cmd.OutOrStdout()
					colorize := shouldColorize(out)
					for _, r := range results {
						kind := statusOK
						switch {
						case !r.Passed && r.Optional:
							kind = statusWarn
						case !r.Passed:
							kind = statusError
						}
						fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
					}
				}
				if failed > 0 {
					return fmt.Errorf("%d readiness check(s) failed", failed)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the remote catalog probe")
	return cmd
}
