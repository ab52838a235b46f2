package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_SynchronousFanout(t *testing.T) {
	bus := New()

	var first, second []Kind
	bus.Subscribe(func(event Event) { first = append(first, event.Kind) })
	bus.Subscribe(func(event Event) { second = append(second, event.Kind) })

	bus.Publish(Event{Kind: KindResourceChanged, Key: "k"})

	// fanout is synchronous, both handlers have run by now
	assert.Equal(t, []Kind{KindResourceChanged}, first)
	assert.Equal(t, []Kind{KindResourceChanged}, second)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := New()

	var seen int
	unsubscribe := bus.Subscribe(func(Event) { seen++ })

	bus.Publish(Event{Kind: KindNotice})
	unsubscribe()
	bus.Publish(Event{Kind: KindNotice})

	assert.Equal(t, 1, seen)
}

func TestEventBus_PublishAfterClose(t *testing.T) {
	bus := New()

	var seen int
	bus.Subscribe(func(Event) { seen++ })

	assert.NoError(t, bus.Close())
	bus.Publish(Event{Kind: KindNotice})

	assert.Zero(t, seen)
}
