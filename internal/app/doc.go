// Package app provides the orchestration layer for namelist.
//
// # Overview
//
// This package wires configuration, logging, the names API client and the
// state store together and runs the user-facing flows against them. It is
// the composition root shared by the TUI and the headless CLI commands.
//
// # Components
//
//   - app.go: Setup builds an Env from config, prefs and command-line overrides
//   - controller.go: Load, Add and Delete flows plus sort and page controls
//   - poller.go: optional background reload with exponential backoff
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │ Build the environment
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()      Read config.toml
//	       ├─────> logging.New()      File (TUI) or stderr (headless)
//	       ├─────> names.NewClient()  HTTP client for the collection
//	       ├─────> prefs.Load()       Restore sort and page size
//	       └─────> state.New()        Store driven by the Controller
//
//	Controller flow (load):
//	┌─────────────────────────────────────────┐
//	│ SetLoading(true), ClearError()          │
//	│  ├─> client.List()                      │
//	│  ├─> SetData() or SetError()            │
//	│  └─> SetLoading(false)                  │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Setup fails only on an unreadable config or an unusable API URL. Flow
// failures are recorded in the store with SetError and also returned, so
// the TUI can show them inline while CLI commands exit non-zero. An add
// that succeeds but whose reload fails is still reported as a success.
//
// # Polling
//
// StartPoller reloads at the configured refresh interval. Consecutive
// failures double the wait up to 30 seconds; the first success resets it.
package app
