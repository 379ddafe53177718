// Package file provides the TOML-backed configuration store.
//
// Settings live in config.toml inside the shoplist directory
// (~/.shoplist unless overridden with --config-dir). Keys are addressed in
// dot notation ("ui.theme") and written back as nested TOML tables.
package file
