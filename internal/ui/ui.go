package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/five82/namelist/internal/app"
	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/prefs"
	"github.com/five82/namelist/internal/sorting"
	"github.com/five82/namelist/internal/state"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *app.Controller
	Prefs      prefs.Prefs
	PrefsPath  string
	Language   language.Tag
	Logger     zerolog.Logger
}

// mode is what the keyboard currently drives.
type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeConfirmDelete
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *app.Controller
	prefs     prefs.Prefs
	prefsPath string
	printer   *message.Printer
	log       zerolog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	mode     mode
	showHelp bool
	width    int
	height   int
	ready    bool

	// Data state, replaced wholesale by every store event
	view     state.View
	selected int
	pending  names.Record
	status   string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	lang := opts.Language
	if lang == language.Und {
		lang = language.English
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	input := textinput.New()
	input.Placeholder = "Enter a name"
	input.Prompt = "Add: "

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		prefs:     opts.Prefs,
		prefsPath: prefsPath,
		printer:   message.NewPrinter(lang),
		log:       opts.Logger,
		theme:     GetTheme(opts.Prefs.Theme),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		spinner:   spin,
	}
	if m.ctrl != nil {
		m.view = m.ctrl.Store().View()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-12)
		m.ready = true
		return m, nil

	case eventMsg:
		m.applyEvent(msg.event)
		return m, nil

	case addedMsg:
		if msg.err == nil {
			m.input.Reset()
			m.input.Blur()
			m.mode = modeBrowse
			m.status = fmt.Sprintf("%s added to the list", msg.name)
		}
		return m, nil

	case deletedMsg:
		if msg.err == nil {
			m.status = fmt.Sprintf("%s deleted from the list", msg.name)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// applyEvent adopts the snapshot carried by a store event and derives the
// status line from the event's payload. Events older than the current view
// are dropped.
func (m *Model) applyEvent(ev state.Event) {
	view := ev.Snapshot()
	if view.Seq < m.view.Seq {
		m.log.Debug().Uint64("seq", view.Seq).Uint64("current", m.view.Seq).Msg("stale event dropped")
		return
	}
	m.view = view
	m.selected = min(m.selected, max(0, len(m.view.Records)-1))

	switch e := ev.(type) {
	case state.DataChanged:
		m.status = loadedMessage(m.printer, e.TotalItems)
		if e.PageChanged {
			m.selected = 0
		}
	case state.SortChanged:
		m.status = e.Mode.Description()
		m.selected = 0
		m.prefs.Sort = e.Mode
		m.savePrefs()
	case state.PageChanged:
		m.selected = 0
		if e.SizeChanged {
			m.status = m.printer.Sprintf("Page size changed to %d items per page. Now on page 1 of %d.",
				e.PageSize, e.View.Info.TotalPages)
			m.prefs.PageSize = e.PageSize
			m.savePrefs()
		} else {
			m.status = e.View.Info.Position(m.printer)
		}
	}
}

// loadedMessage describes how many names a load produced.
func loadedMessage(p *message.Printer, count int) string {
	switch count {
	case 0:
		return "No names found"
	case 1:
		return "1 name loaded"
	default:
		return p.Sprintf("%d names loaded", count)
	}
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.log.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case modeAdd:
		return m.handleAddKey(msg)
	case modeConfirmDelete:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.view.Records)-1 {
			m.selected++
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Reset()
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Delete):
		if len(m.view.Records) == 0 {
			return m, nil
		}
		m.pending = m.view.Records[m.selected]
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.do(func(c *app.Controller) { c.Move(app.Prev) })

	case key.Matches(msg, m.keys.NextPage):
		return m, m.do(func(c *app.Controller) { c.Move(app.Next) })

	case key.Matches(msg, m.keys.FirstPage):
		return m, m.do(func(c *app.Controller) { c.GoTo(1) })

	case key.Matches(msg, m.keys.LastPage):
		return m, m.do(func(c *app.Controller) { c.GoTo(c.Store().PaginationInfo().TotalPages) })

	case key.Matches(msg, m.keys.BiggerPages):
		next := paging.NextPageSize(m.view.Info.PageSize)
		return m, m.do(func(c *app.Controller) { c.Resize(next) })

	case key.Matches(msg, m.keys.SmallerPages):
		prev := paging.PrevPageSize(m.view.Info.PageSize)
		return m, m.do(func(c *app.Controller) { c.Resize(prev) })

	case key.Matches(msg, m.keys.CycleSort):
		next := nextMode(m.view.Mode)
		return m, m.do(func(c *app.Controller) { c.Sort(next) })

	case key.Matches(msg, m.keys.NameAsc):
		return m, m.sortCmd(sorting.NameAsc)
	case key.Matches(msg, m.keys.NameDesc):
		return m, m.sortCmd(sorting.NameDesc)
	case key.Matches(msg, m.keys.DateNewest):
		return m, m.sortCmd(sorting.DateNewest)
	case key.Matches(msg, m.keys.DateOldest):
		return m, m.sortCmd(sorting.DateOldest)
	}

	return m, nil
}

func (m Model) handleAddKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		return m, m.addCmd(m.input.Value())
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		target := m.pending
		m.mode = modeBrowse
		m.pending = names.Record{}
		return m, m.deleteCmd(target)
	case key.Matches(msg, m.keys.No):
		m.mode = modeBrowse
		m.pending = names.Record{}
	}
	return m, nil
}

func nextMode(current sorting.Mode) sorting.Mode {
	modes := sorting.Modes()
	for i, md := range modes {
		if md == current {
			return modes[(i+1)%len(modes)]
		}
	}
	return sorting.Default
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(m.renderHeader(styles))
	b.WriteString("\n")

	if m.view.Err != "" {
		b.WriteString(styles.DangerText.Render("✗ " + m.view.Err))
		b.WriteString("\n")
	}

	b.WriteString(renderList(m.view, m.selected, styles))
	b.WriteString("\n")
	b.WriteString(renderPager(m.view.Info, m.printer, styles))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(m.input.View())
	case modeConfirmDelete:
		b.WriteString(styles.WarningText.Render(fmt.Sprintf("Delete %q? (y/n)", m.pending.Name)))
	default:
		if m.status != "" {
			b.WriteString(styles.Status.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.Footer.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderHeader(styles Styles) string {
	title := styles.Title.Render("namelist")
	sortLabel := styles.AccentText.Render("sort " + m.view.Mode.Label())
	size := styles.MutedText.Render(fmt.Sprintf("%d/page", m.view.Info.PageSize))
	parts := []string{title, sortLabel, size}
	if m.view.Loading {
		parts = append(parts, m.spinner.View()+styles.InfoText.Render("loading"))
	}
	return styles.Header.Render(strings.Join(parts, "  "))
}

// Messages

type eventMsg struct{ event state.Event }

type addedMsg struct {
	name string
	err  error
}

type deletedMsg struct {
	name string
	err  error
}

// Commands

// Store mutations run inside commands so the store's notifications reach
// the program through Send from outside the event loop.

func (m Model) do(fn func(*app.Controller)) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl := m.ctrl
	return func() tea.Msg {
		fn(ctrl)
		return nil
	}
}

func (m Model) sortCmd(mode sorting.Mode) tea.Cmd {
	return m.do(func(c *app.Controller) { c.Sort(mode) })
}

func (m Model) loadCmd() tea.Cmd {
	return m.do(func(c *app.Controller) { _ = c.Load(m.ctx) })
}

func (m Model) addCmd(name string) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		rec, err := ctrl.Add(ctx, name)
		return addedMsg{name: rec.Name, err: err}
	}
}

func (m Model) deleteCmd(rec names.Record) tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return deletedMsg{name: rec.Name, err: ctrl.Delete(ctx, rec.ID)}
	}
}

// Forward subscribes send to every store topic and returns a function that
// removes the subscriptions.
func Forward(store *state.Store, send func(tea.Msg)) func() {
	subs := make([]state.Subscription, 0, len(state.Topics()))
	for _, topic := range state.Topics() {
		subs = append(subs, store.Subscribe(topic, func(ev state.Event) error {
			send(eventMsg{event: ev})
			return nil
		}))
	}
	return func() {
		for _, sub := range subs {
			store.Unsubscribe(sub)
		}
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("ui: controller is required")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	stop := Forward(opts.Controller.Store(), p.Send)
	defer stop()

	_, err := p.Run()
	return err
}
