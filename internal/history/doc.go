// Package history records asset replacements (icons and backgrounds) in a
// small SQLite database so users can see where each file came from.
//
// The schema is embedded and guarded by a single schema_version row. Schema
// changes bump the version in schema.go; users delete history.db to adopt
// the new schema.
package history
