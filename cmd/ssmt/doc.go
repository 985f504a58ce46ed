// Command ssmt manages the SSMT launcher's game library from the terminal.
//
// It resolves the bundled and per-user Games directories, seeds the per-user
// library on first use, lists games, edits per-game Config.json documents,
// replaces icons and backgrounds (from local files or the remote catalog),
// and shows the asset replacement history. Every command accepts --json for
// machine-readable output.
package main
