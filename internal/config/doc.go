// Package config loads, normalizes, and validates launcher configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SSMT_RESOURCE_DIR and SSMT_LOCAL_DATA_DIR. The Config type also derives the
// per-user directories (global games library, settings, history database)
// from the local application data root and vendor namespace.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
