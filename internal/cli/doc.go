// Package cli implements the namelist command line with Cobra.
//
// The root command opens the terminal UI. Subcommands run the same
// controller flows headlessly, logging to stderr instead of the log file:
//
//   - list: print one page with the TUI's sorting and pagination, as text, JSON or YAML
//   - add, delete: change the collection and report the outcome
//   - health: check the API is reachable
//   - logs: tail the diagnostics log written by the TUI
package cli
