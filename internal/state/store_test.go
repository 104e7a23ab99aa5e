package state

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/sorting"
)

func makeRecords(n int) []names.Record {
	records := make([]names.Record, n)
	for i := range records {
		records[i] = names.Record{
			ID:        names.ID(fmt.Sprint(i + 1)),
			Name:      fmt.Sprintf("name%03d", i+1),
			CreatedAt: fmt.Sprintf("2024-01-%02dT00:00:00Z", i%28+1),
		}
	}
	return records
}

// recorder collects every event published on a store, across all topics.
type recorder struct {
	events []Event
}

func record(t *testing.T, s *Store) *recorder {
	t.Helper()
	r := &recorder{}
	for _, topic := range Topics() {
		sub := s.Subscribe(topic, func(ev Event) error {
			r.events = append(r.events, ev)
			return nil
		})
		t.Cleanup(func() { s.Unsubscribe(sub) })
	}
	return r
}

func (r *recorder) topics() []Topic {
	out := make([]Topic, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Topic()
	}
	return out
}

func TestStore_ZeroValueDefaults(t *testing.T) {
	var s Store

	assert.Equal(t, sorting.NameAsc, s.SortMode())
	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, paging.DefaultPageSize, s.PageSize())
	assert.Equal(t, 0, s.TotalItems())
	assert.Empty(t, s.Err())
	assert.False(t, s.Loading())
	assert.Empty(t, s.CurrentPageData())

	info := s.PaginationInfo()
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 1, info.CurrentPage)
}

func TestNew_Options(t *testing.T) {
	s := New(WithSortMode(sorting.DateNewest), WithPageSize(25))
	assert.Equal(t, sorting.DateNewest, s.SortMode())
	assert.Equal(t, 25, s.PageSize())

	s = New(WithSortMode(sorting.Mode(42)), WithPageSize(7))
	assert.Equal(t, sorting.NameAsc, s.SortMode())
	assert.Equal(t, 10, s.PageSize())
}

func TestStore_SetDataSortsAndPages(t *testing.T) {
	s := New()
	r := record(t, s)

	s.SetData([]names.Record{
		{ID: "1", Name: "bob", CreatedAt: "2024-01-02T00:00:00Z"},
		{ID: "2", Name: "Alice", CreatedAt: "2024-01-01T00:00:00Z"},
	})

	require.Equal(t, []Topic{TopicData}, r.topics())
	ev := r.events[0].(DataChanged)
	assert.Equal(t, 2, ev.TotalItems)
	assert.False(t, ev.PageChanged)
	assert.Equal(t, "bob", ev.Data[0].Name, "payload keeps the canonical order")
	assert.Equal(t, "Alice", ev.View.Records[0].Name)

	assert.Equal(t, []string{"Alice", "bob"}, namesOf(s.SortedData()))
	assert.Equal(t, []string{"bob", "Alice"}, namesOf(s.Data()))

	s.SetSortMode(sorting.DateNewest)
	assert.Equal(t, []string{"bob", "Alice"}, namesOf(s.CurrentPageData()))
}

func TestStore_SetDataResetsPage(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))
	s.SetCurrentPage(3)
	require.Equal(t, 3, s.CurrentPage())

	r := record(t, s)
	s.SetData(makeRecords(26))

	assert.Equal(t, 1, s.CurrentPage())
	require.Len(t, r.events, 1)
	assert.True(t, r.events[0].(DataChanged).PageChanged)
}

func TestStore_SetDataRejectsNil(t *testing.T) {
	s := New()
	s.SetData(makeRecords(3))
	r := record(t, s)

	s.SetData(nil)

	assert.Equal(t, 3, s.TotalItems())
	assert.Empty(t, r.events)

	s.SetData([]names.Record{})
	assert.Equal(t, 0, s.TotalItems())
	require.Len(t, r.events, 1)
}

func TestStore_SetDataCopiesInput(t *testing.T) {
	s := New()
	in := makeRecords(2)
	s.SetData(in)

	in[0].Name = "mutated"
	assert.Equal(t, "name001", s.Data()[0].Name)

	out := s.Data()
	out[0].Name = "mutated"
	assert.Equal(t, "name001", s.Data()[0].Name)
}

func TestStore_PaginationScenario(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))
	s.SetCurrentPage(3)

	info := s.PaginationInfo()
	assert.Equal(t, 3, info.TotalPages)
	assert.Equal(t, 20, info.StartIndex)
	assert.Equal(t, 25, info.EndIndex)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
	assert.Len(t, s.CurrentPageData(), 5)
	assert.Equal(t, "name021", s.CurrentPageData()[0].Name)
}

func TestStore_SetCurrentPageClampsAndSkipsNoops(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))
	r := record(t, s)

	s.SetCurrentPage(99)
	assert.Equal(t, 3, s.CurrentPage())
	require.Len(t, r.events, 1)
	ev := r.events[0].(PageChanged)
	assert.Equal(t, 3, ev.Page)
	assert.Equal(t, 1, ev.OldPage)
	assert.Equal(t, 10, ev.PageSize)
	assert.Equal(t, 25, ev.TotalItems)
	assert.False(t, ev.SizeChanged)

	s.SetCurrentPage(3)
	s.SetCurrentPage(50)
	assert.Len(t, r.events, 1, "clamped to the same page publishes nothing")

	s.SetCurrentPage(-2)
	assert.Equal(t, 1, s.CurrentPage())
	assert.Len(t, r.events, 2)
}

func TestStore_NextPrevPage(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))

	s.PrevPage()
	assert.Equal(t, 1, s.CurrentPage())
	s.NextPage()
	s.NextPage()
	s.NextPage()
	assert.Equal(t, 3, s.CurrentPage())
	s.PrevPage()
	assert.Equal(t, 2, s.CurrentPage())
}

func TestStore_SetPageSize(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))
	s.SetCurrentPage(3)
	r := record(t, s)

	s.SetPageSize(25)

	assert.Equal(t, 25, s.PageSize())
	assert.Equal(t, 1, s.CurrentPage())
	require.Len(t, r.events, 1)
	ev := r.events[0].(PageChanged)
	assert.Equal(t, PageChanged{
		Page:        1,
		OldPage:     3,
		PageSize:    25,
		OldPageSize: 10,
		TotalItems:  25,
		SizeChanged: true,
		View:        ev.View,
	}, ev)
	assert.Equal(t, 1, ev.View.Info.TotalPages)
	assert.Len(t, ev.View.Records, 25)

	s.SetPageSize(25)
	s.SetPageSize(7)
	s.SetPageSize(0)
	assert.Len(t, r.events, 1)
	assert.Equal(t, 25, s.PageSize())
}

func TestStore_SetSortMode(t *testing.T) {
	s := New()
	s.SetData(makeRecords(25))
	s.SetCurrentPage(2)
	r := record(t, s)

	s.SetSortMode(sorting.NameDesc)
	assert.Equal(t, 1, s.CurrentPage())
	require.Len(t, r.events, 1)
	ev := r.events[0].(SortChanged)
	assert.Equal(t, sorting.NameDesc, ev.Mode)
	assert.Equal(t, sorting.NameAsc, ev.OldMode)
	assert.True(t, ev.PageChanged)
	assert.Equal(t, "name025", ev.View.Records[0].Name)

	s.SetSortMode(sorting.NameDesc)
	s.SetSortMode(sorting.Mode(-1))
	assert.Len(t, r.events, 1)
	assert.Equal(t, sorting.NameDesc, s.SortMode())
}

func TestStore_ErrorAndLoading(t *testing.T) {
	s := New()
	r := record(t, s)

	s.SetError("Failed to load names from server")
	s.SetError("Failed to load names from server")
	s.SetLoading(true)
	s.SetLoading(true)
	s.ClearError()
	s.SetLoading(false)

	assert.Equal(t, []Topic{TopicError, TopicLoading, TopicError, TopicLoading}, r.topics())
	first := r.events[0].(ErrorChanged)
	assert.Equal(t, "Failed to load names from server", first.Err)
	assert.Empty(t, first.OldErr)
	assert.Equal(t, "Failed to load names from server", first.View.Err)

	cleared := r.events[2].(ErrorChanged)
	assert.Empty(t, cleared.Err)
	assert.Equal(t, "Failed to load names from server", cleared.OldErr)

	loading := r.events[1].(LoadingChanged)
	assert.True(t, loading.Loading)
	assert.False(t, loading.WasLoading)
	assert.True(t, loading.View.Loading)
}

func TestStore_ResetOrder(t *testing.T) {
	s := New(WithPageSize(25), WithSortMode(sorting.DateOldest))
	s.SetData(makeRecords(60))
	s.SetCurrentPage(2)
	s.SetError("boom")
	s.SetLoading(true)
	r := record(t, s)

	s.Reset()

	require.Equal(t, []Topic{TopicData, TopicError, TopicLoading}, r.topics())
	data := r.events[0].(DataChanged)
	assert.Equal(t, []names.Record{}, data.Data)
	assert.True(t, data.PageChanged)
	assert.Equal(t, "boom", r.events[1].(ErrorChanged).OldErr)
	assert.True(t, r.events[2].(LoadingChanged).WasLoading)

	assert.Equal(t, 0, s.TotalItems())
	assert.Equal(t, sorting.NameAsc, s.SortMode())
	assert.Equal(t, 10, s.PageSize())
	assert.Equal(t, 1, s.CurrentPage())
	assert.Empty(t, s.Err())
	assert.False(t, s.Loading())
}

func TestStore_AddThenReloadReturnsToFirstPage(t *testing.T) {
	s := New()
	s.SetData(makeRecords(30))
	s.SetCurrentPage(3)

	s.SetLoading(true)
	s.ClearError()
	s.SetData(append(makeRecords(30), names.Record{ID: "31", Name: "aaron"}))
	s.SetLoading(false)

	assert.Equal(t, 1, s.CurrentPage())
	assert.Equal(t, "aaron", s.CurrentPageData()[0].Name)
	assert.Equal(t, 4, s.PaginationInfo().TotalPages)
}

func TestStore_HandlerSeesConsistentState(t *testing.T) {
	s := New()
	var seen []int
	Handle(s.Bus(), func(ev DataChanged) error {
		// Reading back from the store inside a handler must not deadlock.
		seen = append(seen, s.TotalItems(), ev.View.Info.TotalItems)
		return nil
	})

	s.SetData(makeRecords(12))
	assert.Equal(t, []int{12, 12}, seen)
}

func TestStore_HandlerMayMutate(t *testing.T) {
	s := New()
	s.SetData(makeRecords(40))
	Handle(s.Bus(), func(ev SortChanged) error {
		s.SetCurrentPage(4)
		return nil
	})

	s.SetSortMode(sorting.DateNewest)
	assert.Equal(t, 4, s.CurrentPage())
}

func TestStore_FailingHandlerDoesNotStopOthers(t *testing.T) {
	s := New()
	var calls []string
	var failures []error
	s.Bus().OnHandlerError(func(_ Topic, err error) { failures = append(failures, err) })

	s.Subscribe(TopicLoading, func(Event) error {
		calls = append(calls, "first")
		return errors.New("render failed")
	})
	s.Subscribe(TopicLoading, func(Event) error {
		calls = append(calls, "second")
		panic("boom")
	})
	s.Subscribe(TopicLoading, func(Event) error {
		calls = append(calls, "third")
		return nil
	})

	require.NotPanics(t, func() { s.SetLoading(true) })
	assert.Equal(t, []string{"first", "second", "third"}, calls)
	require.Len(t, failures, 2)
	assert.EqualError(t, failures[0], "render failed")
	assert.EqualError(t, failures[1], "handler panic: boom")
	assert.True(t, s.Loading())
}

func TestStore_ViewMatchesAccessors(t *testing.T) {
	s := New(WithPageSize(25))
	s.SetData(makeRecords(80))
	s.SetSortMode(sorting.NameDesc)
	s.SetCurrentPage(2)

	v := s.View()
	assert.Equal(t, s.CurrentPageData(), v.Records)
	assert.Equal(t, s.PaginationInfo(), v.Info)
	assert.Equal(t, sorting.NameDesc, v.Mode)

	sorted := s.SortedData()
	info := s.PaginationInfo()
	assert.Equal(t, sorted[info.StartIndex:info.EndIndex], v.Records)
}

func TestStore_SeqAdvancesWithEachPublish(t *testing.T) {
	s := New()
	r := record(t, s)
	assert.Zero(t, s.View().Seq)

	s.SetData(makeRecords(30))
	s.SetCurrentPage(2)
	s.SetCurrentPage(2) // no-op
	s.SetSortMode(sorting.DateNewest)
	s.SetError("boom")
	s.SetLoading(true)
	_ = s.View()
	_ = s.Debug()

	require.Len(t, r.events, 5)
	for i, ev := range r.events {
		assert.Equal(t, uint64(i+1), ev.Snapshot().Seq, "event %d (%s)", i, ev.Topic())
	}
	assert.Equal(t, uint64(5), s.View().Seq, "reads and no-ops do not advance")

	r.events = nil
	s.Reset()
	require.Len(t, r.events, 3)
	for _, ev := range r.events {
		assert.Equal(t, uint64(6), ev.Snapshot().Seq, "reset publishes one state")
	}
}

func TestStore_NestedMutationCarriesLaterSeq(t *testing.T) {
	s := New()
	s.SetData(makeRecords(40))
	var seqs []uint64
	s.Subscribe(TopicPage, func(ev Event) error {
		seqs = append(seqs, ev.Snapshot().Seq)
		return nil
	})
	Handle(s.Bus(), func(ev SortChanged) error {
		seqs = append(seqs, ev.View.Seq)
		s.SetCurrentPage(4)
		return nil
	})

	s.SetSortMode(sorting.DateNewest)
	require.Len(t, seqs, 2)
	assert.Less(t, seqs[0], seqs[1])
	assert.Equal(t, seqs[1], s.View().Seq)
}

func TestStore_Debug(t *testing.T) {
	s := New()
	s.SetData(makeRecords(3))
	s.SetError("oops")

	assert.Equal(t, DebugState{
		Items:      3,
		SortMode:   "name-asc",
		Page:       1,
		PageSize:   10,
		TotalItems: 3,
		Err:        "oops",
	}, s.Debug())
}

func namesOf(records []names.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
