// Package history persists a record of completed conversions in SQLite.
//
// The store is an append-only archive: each successful conversion adds one
// row, and the CLI reads it back for "srtmaker history list". Schema changes
// bump the version in schema.go; users clear the database to adopt the new
// schema.
package history
