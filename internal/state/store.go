package state

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/sorting"
)

// Store owns the canonical record set and the view parameters, and notifies
// subscribers after every effective change. The zero value is ready to use.
type Store struct {
	mu       sync.Mutex
	data     []names.Record
	mode     sorting.Mode
	page     int
	pageSize int
	err      string
	loading  bool
	seq      uint64

	bus *Bus
	log zerolog.Logger
}

// Option configures a Store built by New.
type Option func(*Store)

// WithLogger sets the logger used for rejected input and handler failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSortMode sets the initial sort mode. Invalid modes are ignored.
func WithSortMode(m sorting.Mode) Option {
	return func(s *Store) {
		if m.Valid() {
			s.mode = m
		}
	}
}

// WithPageSize sets the initial page size. Unsupported sizes are ignored.
func WithPageSize(size int) Option {
	return func(s *Store) {
		if paging.ValidPageSize(size) {
			s.pageSize = size
		}
	}
}

// New builds a store with empty data and the given options applied.
func New(opts ...Option) *Store {
	s := &Store{
		mode:     sorting.Default,
		page:     1,
		pageSize: paging.DefaultPageSize,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.bus = NewBus(s.log)
	return s
}

// ensureLocked fills in defaults for a zero-value Store.
func (s *Store) ensureLocked() {
	if s.page < 1 {
		s.page = 1
	}
	if s.pageSize == 0 {
		s.pageSize = paging.DefaultPageSize
	}
	if s.bus == nil {
		s.bus = NewBus(s.log)
	}
}

// Bus returns the notification channel the store publishes on.
func (s *Store) Bus() *Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.bus
}

// Subscribe registers h for topic on the store's bus.
func (s *Store) Subscribe(topic Topic, h Handler) Subscription {
	return s.Bus().Subscribe(topic, h)
}

// Unsubscribe removes a handler registered with Subscribe.
func (s *Store) Unsubscribe(sub Subscription) {
	s.Bus().Unsubscribe(sub)
}

// SetData replaces the record set and returns to page 1. A nil slice is
// rejected; pass an empty slice to clear.
func (s *Store) SetData(records []names.Record) {
	if records == nil {
		s.log.Warn().Msg("set data: expected a record slice, got nil")
		return
	}

	s.mu.Lock()
	s.ensureLocked()
	s.data = cloneRecords(records)
	oldPage := s.page
	s.page = 1
	ev := DataChanged{
		Data:        cloneRecords(s.data),
		TotalItems:  len(s.data),
		PageChanged: oldPage != 1,
		View:        s.nextViewLocked(),
	}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// SetSortMode switches the ordering and returns to page 1. Invalid or
// unchanged modes are ignored.
func (s *Store) SetSortMode(mode sorting.Mode) {
	if !mode.Valid() {
		s.log.Warn().Int("mode", int(mode)).Msg("set sort mode: invalid mode")
		return
	}

	s.mu.Lock()
	s.ensureLocked()
	if s.mode == mode {
		s.mu.Unlock()
		return
	}
	oldMode := s.mode
	oldPage := s.page
	s.mode = mode
	s.page = 1
	ev := SortChanged{
		Mode:        mode,
		OldMode:     oldMode,
		PageChanged: oldPage != 1,
		View:        s.nextViewLocked(),
	}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// SetCurrentPage moves to page, clamped into the valid range. Nothing is
// published when the clamped page equals the current one.
func (s *Store) SetCurrentPage(page int) {
	s.mu.Lock()
	s.ensureLocked()
	info := paging.Paginate(len(s.data), s.pageSize, page)
	if info.CurrentPage == s.page {
		s.mu.Unlock()
		return
	}
	oldPage := s.page
	s.page = info.CurrentPage
	ev := PageChanged{
		Page:        s.page,
		OldPage:     oldPage,
		PageSize:    s.pageSize,
		OldPageSize: s.pageSize,
		TotalItems:  len(s.data),
		View:        s.nextViewLocked(),
	}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// NextPage advances one page if there is one.
func (s *Store) NextPage() {
	s.SetCurrentPage(s.CurrentPage() + 1)
}

// PrevPage goes back one page if there is one.
func (s *Store) PrevPage() {
	s.SetCurrentPage(s.CurrentPage() - 1)
}

// SetPageSize changes the page size and returns to page 1. Sizes outside
// paging.PageSizes are rejected.
func (s *Store) SetPageSize(size int) {
	if !paging.ValidPageSize(size) {
		s.log.Warn().Int("size", size).Ints("allowed", paging.PageSizes).Msg("set page size: invalid size")
		return
	}

	s.mu.Lock()
	s.ensureLocked()
	if s.pageSize == size {
		s.mu.Unlock()
		return
	}
	oldSize := s.pageSize
	oldPage := s.page
	s.pageSize = size
	s.page = 1
	ev := PageChanged{
		Page:        1,
		OldPage:     oldPage,
		PageSize:    size,
		OldPageSize: oldSize,
		TotalItems:  len(s.data),
		SizeChanged: true,
		View:        s.nextViewLocked(),
	}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// SetError records a user-facing error message. An empty message clears it.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	s.ensureLocked()
	if s.err == msg {
		s.mu.Unlock()
		return
	}
	old := s.err
	s.err = msg
	ev := ErrorChanged{Err: msg, OldErr: old, View: s.nextViewLocked()}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// ClearError is SetError("").
func (s *Store) ClearError() {
	s.SetError("")
}

// SetLoading records whether a request is in flight.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.ensureLocked()
	if s.loading == loading {
		s.mu.Unlock()
		return
	}
	was := s.loading
	s.loading = loading
	ev := LoadingChanged{Loading: loading, WasLoading: was, View: s.nextViewLocked()}
	bus := s.bus
	s.mu.Unlock()

	bus.Publish(ev)
}

// Reset restores the defaults and publishes data, error and loading events,
// in that order, so subscribers can clear whatever they accumulated.
func (s *Store) Reset() {
	s.mu.Lock()
	s.ensureLocked()
	oldPage := s.page
	oldErr := s.err
	wasLoading := s.loading

	s.data = nil
	s.mode = sorting.Default
	s.page = 1
	s.pageSize = paging.DefaultPageSize
	s.err = ""
	s.loading = false

	view := s.nextViewLocked()
	events := []Event{
		DataChanged{Data: []names.Record{}, TotalItems: 0, PageChanged: oldPage != 1, View: view},
		ErrorChanged{Err: "", OldErr: oldErr, View: view},
		LoadingChanged{Loading: false, WasLoading: wasLoading, View: view},
	}
	bus := s.bus
	s.mu.Unlock()

	for _, ev := range events {
		bus.Publish(ev)
	}
}

// Data returns a copy of the canonical, unsorted record set.
func (s *Store) Data() []names.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecords(s.data)
}

// SortedData returns every record ordered by the current sort mode.
func (s *Store) SortedData() []names.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sorting.Order(s.data, s.mode)
}

// PaginationInfo derives the current page window.
func (s *Store) PaginationInfo() paging.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return paging.Paginate(len(s.data), s.pageSize, s.page)
}

// CurrentPageData returns the sorted records on the current page.
func (s *Store) CurrentPageData() []names.Record {
	return s.View().Records
}

// View returns a consistent snapshot of everything a renderer needs.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.viewLocked()
}

// SortMode returns the active sort mode.
func (s *Store) SortMode() sorting.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// CurrentPage returns the current 1-based page.
func (s *Store) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.page
}

// PageSize returns the current page size.
func (s *Store) PageSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return s.pageSize
}

// TotalItems returns the size of the whole record set.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Err returns the current error message, empty when there is none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Loading reports whether a request is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// DebugState is a compact summary of the store for logs and diagnostics.
type DebugState struct {
	Items      int    `json:"items"`
	SortMode   string `json:"sort_mode"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalItems int    `json:"total_items"`
	Err        string `json:"error,omitempty"`
	Loading    bool   `json:"loading"`
}

// Debug returns a DebugState for the store.
func (s *Store) Debug() DebugState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLocked()
	return DebugState{
		Items:      len(s.data),
		SortMode:   s.mode.String(),
		Page:       s.page,
		PageSize:   s.pageSize,
		TotalItems: len(s.data),
		Err:        s.err,
		Loading:    s.loading,
	}
}

// nextViewLocked advances the sequence number and snapshots the state for a
// mutation about to publish.
func (s *Store) nextViewLocked() View {
	s.seq++
	return s.viewLocked()
}

func (s *Store) viewLocked() View {
	sorted := sorting.Order(s.data, s.mode)
	info := paging.Paginate(len(s.data), s.pageSize, s.page)
	return View{
		Records: paging.Slice(sorted, info),
		Info:    info,
		Mode:    s.mode,
		Err:     s.err,
		Loading: s.loading,
		Seq:     s.seq,
	}
}

func cloneRecords(records []names.Record) []names.Record {
	dup := make([]names.Record, len(records))
	copy(dup, records)
	return dup
}
