// Package state holds the names list and the parameters used to view it, and
// tells subscribers when any of them change.
//
// # Overview
//
// The Store is the single source of truth for the client. It owns:
//
//   - The canonical record set, in the order the API returned it
//   - The sort mode (sorting.Mode)
//   - The current page and page size
//   - The current user-facing error message, if any
//   - The loading flag
//
// Everything else, such as the sorted list, the pagination window and the
// visible page, is derived on demand and never stored.
//
// # Architecture
//
//	Controller (app):              Renderers (ui, cli):
//	┌────────────────┐            ┌──────────────────────┐
//	│ client.List()  │            │                      │
//	│      ↓         │            │                      │
//	│ store.SetData()│──Publish──→│ Handle[DataChanged]  │
//	│ store.SetSort()│            │ Handle[SortChanged]  │
//	│      ...       │  (Bus)     │      ↓               │
//	│                │            │ render ev.View       │
//	└────────────────┘            └──────────────────────┘
//
// Mutators update the fields under a mutex, compute a View while still
// holding it, release the lock and then publish. Handlers therefore see a
// consistent snapshot and may call back into the Store without deadlocking.
//
// # Events
//
// Each topic has its own payload type:
//
//	TopicData    DataChanged     SetData, Reset
//	TopicSort    SortChanged     SetSortMode
//	TopicPage    PageChanged     SetCurrentPage, SetPageSize, NextPage, PrevPage
//	TopicError   ErrorChanged    SetError, ClearError, Reset
//	TopicLoading LoadingChanged  SetLoading, Reset
//
// Every payload carries the post-change View. Handle subscribes with the
// concrete payload type:
//
//	sub := state.Handle(store.Bus(), func(ev state.SortChanged) error {
//		render(ev.View)
//		return nil
//	})
//	defer store.Unsubscribe(sub)
//
// Reset publishes DataChanged, ErrorChanged and LoadingChanged in that order.
//
// # Failure Handling
//
// Mutators never return errors. Rejected input (a nil record slice, an
// unknown sort mode, an unsupported page size) is logged as a warning and
// leaves the Store untouched, and no event is published. Changes that do
// not alter anything (same page, same mode, same error) publish nothing.
//
// A handler that returns an error or panics is logged and skipped; the
// remaining handlers still run and the mutator returns normally.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // sort name-asc, page 1, page size 10
//
// New applies options such as WithSortMode and WithPageSize on top of the
// same defaults.
package state
