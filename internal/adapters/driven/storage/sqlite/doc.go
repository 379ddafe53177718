// Package sqlite provides a local credential store for users without a
// Firebase project.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The record is kept as JSON in a single row keyed by its
// logical path, so the same path setting works for every backend.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each applied version is recorded in
// schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.shoplist/shoplist.db
package sqlite
