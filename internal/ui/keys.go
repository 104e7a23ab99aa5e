package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding

	// List
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Delete key.Binding

	// Paging
	PrevPage     key.Binding
	NextPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	BiggerPages  key.Binding
	SmallerPages key.Binding

	// Sorting
	CycleSort  key.Binding
	NameAsc    key.Binding
	NameDesc   key.Binding
	DateNewest key.Binding
	DateOldest key.Binding

	// Input and confirmation
	Confirm key.Binding
	Cancel  key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "Reload"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a", "Add name"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "x", "delete"),
			key.WithHelp("d", "Delete name"),
		),

		PrevPage: key.NewBinding(
			key.WithKeys("h", "left", "pgup"),
			key.WithHelp("h/left", "Previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/right", "Next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last page"),
		),
		BiggerPages: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More per page"),
		),
		SmallerPages: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "Fewer per page"),
		),

		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),
		NameAsc: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Sort A→Z"),
		),
		NameDesc: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Sort Z→A"),
		),
		DateNewest: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Newest first"),
		),
		DateOldest: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Oldest first"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Delete, k.CycleSort, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Delete, k.Reload},
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage, k.BiggerPages, k.SmallerPages},
		{k.CycleSort, k.NameAsc, k.NameDesc, k.DateNewest, k.DateOldest},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
