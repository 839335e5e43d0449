package eventbus

import (
	"slices"
	"sync"
)

// hooks are observers of the bus itself rather than of any event.
type hooks struct {
	mu          sync.RWMutex
	onPublish   []func(Event, any)
	onDrop      []func(Event, any)
	onSubscribe []func(Event)
	onPanic     []func(Event, any, any)
}

// OnPublish registers fn to run after an event is queued.
func (bus *EventBus) OnPublish(fn func(Event, any)) {
	addHook(&bus.hooks, &bus.hooks.onPublish, fn)
}

// OnDrop registers fn to run when an event is discarded because the buffer
// is full.
func (bus *EventBus) OnDrop(fn func(Event, any)) {
	addHook(&bus.hooks, &bus.hooks.onDrop, fn)
}

// OnSubscribe registers fn to run after each new subscription.
func (bus *EventBus) OnSubscribe(fn func(Event)) {
	addHook(&bus.hooks, &bus.hooks.onSubscribe, fn)
}

// OnPanic registers fn to run when a subscriber panics. fn receives the
// recovered value.
func (bus *EventBus) OnPanic(fn func(Event, any, any)) {
	addHook(&bus.hooks, &bus.hooks.onPanic, fn)
}

func addHook[F any](h *hooks, list *[]F, fn F) {
	h.mu.Lock()
	*list = append(*list, fn)
	h.mu.Unlock()
}

func snapshot[F any](h *hooks, list *[]F) []F {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(*list)
}

// send queues an event without blocking.
func (bus *EventBus) send(event Event, payload any) {
	select {
	case bus.ch <- envelope{event: event, payload: payload}:
		for _, fn := range snapshot(&bus.hooks, &bus.hooks.onPublish) {
			fn(event, payload)
		}
	default:
		for _, fn := range snapshot(&bus.hooks, &bus.hooks.onDrop) {
			fn(event, payload)
		}
	}
}

func (bus *EventBus) runOnSubscribe(event Event) {
	for _, fn := range snapshot(&bus.hooks, &bus.hooks.onSubscribe) {
		fn(event)
	}
}

// runOnPanic shields the dispatch loop from hooks that panic themselves.
func (bus *EventBus) runOnPanic(event Event, payload any, recovered any) {
	for _, fn := range snapshot(&bus.hooks, &bus.hooks.onPanic) {
		func() {
			defer func() { _ = recover() }()
			fn(event, payload, recovered)
		}()
	}
}
