package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/five82/namelist/internal/names"
	"github.com/five82/namelist/internal/sorting"
	"github.com/five82/namelist/internal/state"
)

// Direction is a relative page move.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Controller runs the user-facing flows against the store: every network
// call is bracketed by SetLoading and its failure ends up in SetError.
type Controller struct {
	store  *state.Store
	client names.Collection
	log    zerolog.Logger
}

// NewController returns a Controller driving store with client.
func NewController(store *state.Store, client names.Collection, log zerolog.Logger) *Controller {
	if store == nil {
		store = state.New(state.WithLogger(log))
	}
	return &Controller{store: store, client: client, log: log}
}

// Store returns the store the controller drives.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Load fetches the collection and replaces the store's data. On failure the
// previous data is kept and the error message is recorded.
func (c *Controller) Load(ctx context.Context) error {
	c.store.SetLoading(true)
	c.store.ClearError()
	defer c.store.SetLoading(false)

	records, err := c.list(ctx)
	if err != nil {
		c.fail("load names", err)
		return err
	}
	c.store.SetData(records)
	c.log.Info().Int("count", len(records)).Msg("names loaded")
	c.log.Debug().Interface("state", c.store.Debug()).Msg("store state")
	return nil
}

// Add validates and creates name, then reloads the collection. A failed
// reload is recorded in the store but does not fail the add.
func (c *Controller) Add(ctx context.Context, name string) (names.Record, error) {
	cleaned, err := names.ValidateName(name)
	if err != nil {
		c.store.SetError(err.Error())
		c.log.Warn().Err(err).Msg("add rejected")
		return names.Record{}, err
	}

	c.store.SetLoading(true)
	c.store.ClearError()
	defer c.store.SetLoading(false)

	if c.client == nil {
		err := errors.New("no names client configured")
		c.fail("add name", err)
		return names.Record{}, err
	}
	created, err := c.client.Add(ctx, cleaned)
	if err != nil {
		c.fail("add name", err)
		return names.Record{}, err
	}
	c.log.Info().Str("name", created.Name).Str("id", created.ID.String()).Msg("name added")

	_ = c.Load(ctx)
	return created, nil
}

// Delete removes the record with id, then reloads the collection.
func (c *Controller) Delete(ctx context.Context, id names.ID) error {
	c.store.SetLoading(true)
	c.store.ClearError()
	defer c.store.SetLoading(false)

	if c.client == nil {
		err := errors.New("no names client configured")
		c.fail("delete name", err)
		return err
	}
	if err := c.client.Delete(ctx, id); err != nil {
		c.fail("delete name", err)
		return err
	}
	c.log.Info().Str("id", id.String()).Msg("name deleted")

	_ = c.Load(ctx)
	return nil
}

// Sort switches the sort mode.
func (c *Controller) Sort(mode sorting.Mode) {
	c.store.SetSortMode(mode)
}

// Move goes one page in dir, staying inside the valid range.
func (c *Controller) Move(dir Direction) {
	info := c.store.PaginationInfo()
	switch dir {
	case Prev:
		c.store.SetCurrentPage(max(1, info.CurrentPage-1))
	case Next:
		c.store.SetCurrentPage(min(info.TotalPages, info.CurrentPage+1))
	default:
		c.log.Warn().Int("direction", int(dir)).Msg("invalid page direction")
	}
}

// GoTo jumps to page n; out of range pages are clamped by the store.
func (c *Controller) GoTo(n int) {
	c.store.SetCurrentPage(n)
}

// Resize changes the page size.
func (c *Controller) Resize(size int) {
	c.store.SetPageSize(size)
}

func (c *Controller) list(ctx context.Context) ([]names.Record, error) {
	if c.client == nil {
		return nil, errors.New("no names client configured")
	}
	return c.client.List(ctx)
}

// fail records err for display and logs the detailed cause.
func (c *Controller) fail(action string, err error) {
	var apiErr *names.Error
	if errors.As(err, &apiErr) {
		c.log.Error().Str("op", string(apiErr.Op)).Int("status", apiErr.Status).Str("detail", apiErr.Detail()).Msg(action + " failed")
	} else {
		c.log.Error().Err(err).Msg(action + " failed")
	}
	c.store.SetError(err.Error())
}
