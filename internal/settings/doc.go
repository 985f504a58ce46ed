// Package settings persists launcher-wide UI preferences (background choice,
// sidebar and content translucency, cache directory, active config name).
// The Store is owned by the composition root and passed to callers
// explicitly.
package settings
