// Package ui provides the terminal interface for browsing and editing the
// names list, built on Bubble Tea.
//
// # Data Flow
//
// The Model never reads the store directly while rendering. Run subscribes
// to every store topic and forwards each event into the program with
// Send; Update adopts the View snapshot the event carries and derives the
// status line from the event payload.
//
// Key presses that change state (paging, sorting, add, delete, reload) are
// issued as tea.Cmd values calling the app.Controller. Running them outside
// Update keeps the event loop free to receive the notifications those
// mutations publish.
//
// # Files
//
//   - ui.go: Model, Update, key handling, commands and Run
//   - list.go: row and pager rendering
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go: colour themes and derived Lipgloss styles
//
// # Preferences
//
// Sort order, page size and theme are written back to the prefs file
// whenever they change so the next session starts where this one ended.
package ui
