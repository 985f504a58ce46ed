// Package gameconfig persists the per-game Config.json document: the preset
// and background type the launcher reads, plus UI-owned sections that are
// carried through unchanged.
package gameconfig
