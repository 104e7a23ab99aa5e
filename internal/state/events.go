package state

import (
	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/paging"
	"github.com/five82/namelist/internal/sorting"
)

// Topic names an event category.
type Topic int

const (
	TopicData Topic = iota
	TopicSort
	TopicPage
	TopicError
	TopicLoading
)

var topicNames = [...]string{
	TopicData:    "dataChange",
	TopicSort:    "sortChange",
	TopicPage:    "pageChange",
	TopicError:   "errorChange",
	TopicLoading: "loadingChange",
}

// Topics lists every topic.
func Topics() []Topic {
	return []Topic{TopicData, TopicSort, TopicPage, TopicError, TopicLoading}
}

func (t Topic) String() string {
	if t >= 0 && int(t) < len(topicNames) {
		return topicNames[t]
	}
	return "unknown"
}

// View is the render-ready state carried by every event: the visible page,
// its pagination metadata and the status fields a renderer needs.
//
// Seq increases with every published mutation. Events are delivered after
// the store unlocks, so concurrent mutations can reach a subscriber out of
// order; a View with a lower Seq than one already seen is stale.
type View struct {
	Records []names.Record
	Info    paging.Info
	Mode    sorting.Mode
	Err     string
	Loading bool
	Seq     uint64
}

// Event is implemented by the five change payloads below.
type Event interface {
	Topic() Topic
	Snapshot() View
	isEvent()
}

// DataChanged follows SetData and Reset.
type DataChanged struct {
	Data        []names.Record // full canonical set, unsorted
	TotalItems  int
	PageChanged bool
	View        View
}

// SortChanged follows a successful SetSortMode.
type SortChanged struct {
	Mode        sorting.Mode
	OldMode     sorting.Mode
	PageChanged bool
	View        View
}

// PageChanged follows page navigation and page size changes. SizeChanged
// separates the two so renderers can word their feedback differently.
type PageChanged struct {
	Page        int
	OldPage     int
	PageSize    int
	OldPageSize int
	TotalItems  int
	SizeChanged bool
	View        View
}

// ErrorChanged follows SetError and Reset. Empty strings mean no error.
type ErrorChanged struct {
	Err    string
	OldErr string
	View   View
}

// LoadingChanged follows SetLoading and Reset.
type LoadingChanged struct {
	Loading    bool
	WasLoading bool
	View       View
}

func (DataChanged) Topic() Topic    { return TopicData }
func (SortChanged) Topic() Topic    { return TopicSort }
func (PageChanged) Topic() Topic    { return TopicPage }
func (ErrorChanged) Topic() Topic   { return TopicError }
func (LoadingChanged) Topic() Topic { return TopicLoading }

func (e DataChanged) Snapshot() View    { return e.View }
func (e SortChanged) Snapshot() View    { return e.View }
func (e PageChanged) Snapshot() View    { return e.View }
func (e ErrorChanged) Snapshot() View   { return e.View }
func (e LoadingChanged) Snapshot() View { return e.View }

func (DataChanged) isEvent()    {}
func (SortChanged) isEvent()    {}
func (PageChanged) isEvent()    {}
func (ErrorChanged) isEvent()   {}
func (LoadingChanged) isEvent() {}
