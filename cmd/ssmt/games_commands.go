package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ssmt/internal/launcher"
	"ssmt/internal/library"
)

func newGamesCommand(ctx *commandContext) *cobra.Command {
	gamesCmd := &cobra.Command{
		Use:   "games",
		Short: "List games and manage sidebar visibility",
	}
	gamesCmd.AddCommand(newGamesListCommand(ctx))
	gamesCmd.AddCommand(newGamesVisibilityCommand(ctx, "show", true))
	gamesCmd.AddCommand(newGamesVisibilityCommand(ctx, "hide", false))
	return gamesCmd
}

func newGamesListCommand(ctx *commandContext) *cobra.Command {
	var bundled bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games in the per-user library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				var games []library.Game
				var err error
				if bundled {
					games, err = svc.ScanBundled(cmd.Context())
				} else {
					games, err = svc.ScanGames(cmd.Context())
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if games == nil {
						games = []library.Game{}
					}
					return writeJSON(cmd, games)
				}
				out := cmd.OutOrStdout()
				if len(games) == 0 {
					fmt.Fprintln(out, "No games found")
					return nil
				}
				fmt.Fprintln(out, renderTable(
					[]column{left("Name"), left("Sidebar"), left("Background"), left("Video")},
					gameRows(games),
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&bundled, "bundled", false, "List the read-only bundled library instead")
	return cmd
}

func gameRows(games []library.Game) [][]string {
	rows := make([][]string, 0, len(games))
	for _, game := range games {
		rows = append(rows, []string{
			game.Name,
			yesNo(game.Visible),
			baseOrDash(game.BackgroundPath),
			baseOrDash(game.BackgroundVideoPath),
		})
	}
	return rows
}

func newGamesVisibilityCommand(ctx *commandContext, use string, visible bool) *cobra.Command {
	short := "Show a game in the sidebar"
	if !visible {
		short = "Hide a game from the sidebar"
	}
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *launcher.Service) error {
				name := args[0]
				if err := svc.SetVisibility(cmd.Context(), name, visible); err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]any{"name": name, "showSidebar": visible})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(name, statusOK, "sidebar "+yesNo(visible), shouldColorize(out)))
				return nil
			})
		},
	}
}

func baseOrDash(path string) string {
	if path == "" {
		return "-"
	}
	return filepath.Base(path)
}
