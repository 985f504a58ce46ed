// Package services defines shared utilities consumed by the library, config,
// and asset packages.
//
// Key responsibilities:
//   - Context helpers that stamp game names, operation names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep failures
//     classifiable (not found, parse, io, unsupported input, network,
//     timeout) while embedding the offending path, URL, or value.
//
// Use these helpers when wiring new operations so error reporting and
// observability stay uniform across the launcher backend.
package services
