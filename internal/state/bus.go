package state

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Handler receives published events. A returned error is logged and
// otherwise ignored.
type Handler func(Event) error

// Subscription identifies a registered handler. The zero value refers to
// nothing and is safe to unsubscribe.
type Subscription struct {
	topic Topic
	id    uint64
}

// Topic returns the topic the subscription listens on.
func (s Subscription) Topic() Topic {
	return s.topic
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus is a typed publish/subscribe registry keyed by Topic. Handlers for a
// topic run synchronously in registration order.
type Bus struct {
	mu       sync.Mutex
	nextID   uint64
	handlers map[Topic][]registration
	log      zerolog.Logger
	onError  func(Topic, error)
}

// NewBus returns an empty bus that logs handler failures to log.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[Topic][]registration),
		log:      log,
	}
}

// OnHandlerError installs a hook called for every failed handler, after the
// failure has been logged.
func (b *Bus) OnHandlerError(fn func(Topic, error)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// Subscribe registers h for topic.
func (b *Bus) Subscribe(topic Topic, h Handler) Subscription {
	if h == nil {
		return Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handlers == nil {
		b.handlers = make(map[Topic][]registration)
	}
	b.nextID++
	b.handlers[topic] = append(b.handlers[topic], registration{id: b.nextID, handler: h})
	return Subscription{topic: topic, id: b.nextID}
}

// Unsubscribe removes the handler behind sub. Unknown or already removed
// subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	if sub.id == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	regs := b.handlers[sub.topic]
	for i, r := range regs {
		if r.id == sub.id {
			kept := make([]registration, 0, len(regs)-1)
			kept = append(kept, regs[:i]...)
			kept = append(kept, regs[i+1:]...)
			b.handlers[sub.topic] = kept
			return
		}
	}
}

// Count returns how many handlers are registered for topic.
func (b *Bus) Count(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[topic])
}

// Publish delivers ev to every handler registered for its topic at the time
// of the call. A failing or panicking handler does not stop the others and
// never reaches the publisher.
func (b *Bus) Publish(ev Event) {
	if ev == nil {
		return
	}
	topic := ev.Topic()

	b.mu.Lock()
	regs := b.handlers[topic]
	onError := b.onError
	b.mu.Unlock()

	for _, r := range regs {
		if err := invoke(r.handler, ev); err != nil {
			b.log.Error().Err(err).Str("topic", topic.String()).Uint64("subscription", r.id).Msg("event handler failed")
			if onError != nil {
				onError(topic, err)
			}
		}
	}
}

func invoke(h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ev)
}

// Handle subscribes fn to the topic of E, so callers receive the concrete
// payload type without a type switch.
func Handle[E Event](b *Bus, fn func(E) error) Subscription {
	var zero E
	return b.Subscribe(zero.Topic(), func(ev Event) error {
		e, ok := ev.(E)
		if !ok {
			return fmt.Errorf("unexpected %T on %s", ev, zero.Topic())
		}
		return fn(e)
	})
}
