package state

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_RegistrationOrder(t *testing.T) {
	b := NewBus(zerolog.Nop())
	var calls []int
	for i := 1; i <= 3; i++ {
		b.Subscribe(TopicError, func(Event) error {
			calls = append(calls, i)
			return nil
		})
	}

	b.Publish(ErrorChanged{Err: "x"})
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestBus_TopicsAreIsolated(t *testing.T) {
	b := NewBus(zerolog.Nop())
	var got []Topic
	b.Subscribe(TopicSort, func(ev Event) error {
		got = append(got, ev.Topic())
		return nil
	})

	b.Publish(ErrorChanged{})
	b.Publish(LoadingChanged{})
	b.Publish(SortChanged{})

	assert.Equal(t, []Topic{TopicSort}, got)
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := NewBus(zerolog.Nop())
	calls := 0
	sub := b.Subscribe(TopicData, func(Event) error {
		calls++
		return nil
	})
	other := b.Subscribe(TopicData, func(Event) error { return nil })
	require.Equal(t, 2, b.Count(TopicData))

	b.Unsubscribe(sub)
	b.Unsubscribe(sub)
	b.Unsubscribe(Subscription{})
	b.Publish(DataChanged{})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, b.Count(TopicData))
	assert.Equal(t, TopicData, other.Topic())
}

func TestBus_UnsubscribeDuringPublish(t *testing.T) {
	b := NewBus(zerolog.Nop())
	var calls []string
	var second Subscription
	b.Subscribe(TopicPage, func(Event) error {
		calls = append(calls, "first")
		b.Unsubscribe(second)
		return nil
	})
	second = b.Subscribe(TopicPage, func(Event) error {
		calls = append(calls, "second")
		return nil
	})

	b.Publish(PageChanged{})
	b.Publish(PageChanged{})

	// The first delivery still reaches the handler registered when it started.
	assert.Equal(t, []string{"first", "second", "first"}, calls)
}

func TestBus_NilHandlerIgnored(t *testing.T) {
	b := NewBus(zerolog.Nop())
	sub := b.Subscribe(TopicData, nil)

	assert.Equal(t, Subscription{}, sub)
	assert.Equal(t, 0, b.Count(TopicData))
	assert.NotPanics(t, func() { b.Publish(nil) })
}

func TestBus_ZeroValueUsable(t *testing.T) {
	var b Bus
	called := false
	b.Subscribe(TopicLoading, func(Event) error {
		called = true
		return nil
	})
	b.Publish(LoadingChanged{Loading: true})
	assert.True(t, called)
}

func TestBus_HandlerFailuresAreLogged(t *testing.T) {
	var buf bytes.Buffer
	b := NewBus(zerolog.New(&buf))
	b.Subscribe(TopicError, func(Event) error { return errors.New("nope") })

	b.Publish(ErrorChanged{Err: "x"})

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"topic":"errorChange"`)
	assert.Contains(t, out, `"error":"nope"`)
	assert.Contains(t, out, "event handler failed")
}

func TestHandle_TypedPayload(t *testing.T) {
	b := NewBus(zerolog.Nop())
	var got []PageChanged
	Handle(b, func(ev PageChanged) error {
		got = append(got, ev)
		return nil
	})

	b.Publish(PageChanged{Page: 2, OldPage: 1})
	b.Publish(SortChanged{})

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Page)
}

func TestTopic_String(t *testing.T) {
	want := []string{"dataChange", "sortChange", "pageChange", "errorChange", "loadingChange"}
	for i, topic := range Topics() {
		assert.Equal(t, want[i], topic.String())
	}
	assert.Equal(t, "unknown", Topic(99).String())
}
