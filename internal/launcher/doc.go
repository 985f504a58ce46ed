// Package launcher composes the library, config, asset, settings, and
// history stores into a single Service. The CLI talks only to Service.
//
// Every operation runs with a correlation id on its context. Operations that
// touch a game bootstrap the per-user library first, then hold that game's
// lock for the duration of the change.
package launcher
