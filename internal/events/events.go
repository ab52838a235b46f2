package events

import (
	"sync"

	"recruiter/internal/logger"
)

type Kind string

const (
	// KindResourceChanged fires when cached data for a key changes
	// (fetch results and optimistic mutations alike).
	KindResourceChanged Kind = "resource.changed"
	// KindResourceState fires on every per-key state transition.
	KindResourceState Kind = "resource.state"
	// KindNotice carries a user-facing notification.
	KindNotice Kind = "notice"
)

type Event struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type Handler func(Event)

// EventBus fans events out to subscribers synchronously, so a cache change
// is observable by every consumer before the publisher continues. Handlers
// must not block.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	closed   bool
	log      logger.Logger
}

func New() *EventBus {
	return &EventBus{
		handlers: make(map[int]Handler),
		log:      logger.New("events"),
	}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (b *EventBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

func (b *EventBus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	for _, handler := range b.handlers {
		handler(event)
	}
}

func (b *EventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[int]Handler)
	return nil
}
