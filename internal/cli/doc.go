// Package cli implements the hemicycle command-line interface.
//
// This package provides commands for computing seating charts from groups
// files, serving them over HTTP, and managing the local chart cache. The CLI
// is built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a chart and write JSON, XLSX or DXF files
//   - serve: Run the HTTP API
//   - cache: Clear or locate the file cache
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Settings come from a TOML file (--config), HEMICYCLE_* environment
// variables and an optional .env file. See package config.
//
// # Logging
//
// Log lines go to stderr; --verbose (-v) lowers the level to debug and adds
// caller information. Human-facing output goes to stdout so it can be piped.
package cli
