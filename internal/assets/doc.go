// Package assets replaces per-game icon and background files.
//
// Every replacement stages the new content in a temp file inside the game
// directory, removes the previous candidates for that asset kind, and
// renames the staged file into place. Remote updates download everything
// before the first file is touched, so a failed request leaves the existing
// background alone.
package assets
