package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"ssmt/internal/history"
	"ssmt/internal/launcher"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var clearFlag bool
	cmd := &cobra.Command{
		Use:   "history [name]",
		Short: "Show recorded icon and background replacements",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			game := ""
			if len(args) == 1 {
				game = args[0]
			}
			return ctx.withService(func(svc *launcher.Service) error {
				if clearFlag {
					removed, err := svc.ClearHistory(cmd.Context(), game)
					if err != nil {
						return err
					}
					if ctx.jsonOutput() {
						return writeJSON(cmd, map[string]any{"game": game, "removed": removed})
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %d history entries\n", removed)
					return nil
				}
				entries, err := svc.History(cmd.Context(), game, limit)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if entries == nil {
						entries = []history.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No history recorded")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]column{right("ID"), left("Game"), left("Kind"), left("Source"), right("Bytes"), left("Recorded"), left("Origin")},
					historyRows(entries),
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	cmd.Flags().BoolVar(&clearFlag, "clear", false, "Delete history entries instead of listing them")
	return cmd
}

func historyRows(entries []history.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Game,
			titleWord(entry.Kind),
			entry.Source,
			strconv.FormatInt(entry.Bytes, 10),
			entry.RecordedAt.Local().Format(time.DateTime),
			entry.Origin,
		})
	}
	return rows
}
