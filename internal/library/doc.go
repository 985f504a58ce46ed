// Package library owns the games library layout: seeding the per-user
// library from the bundled copy, scanning game directories into Game
// records, and the GameIconConfig.json sidebar visibility document.
package library
