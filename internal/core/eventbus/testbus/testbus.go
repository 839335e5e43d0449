// Package testbus provides test utilities for the event bus.
// It wraps a real EventBus with event recording and assertion helpers.
package testbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/dueline/internal/core/eventbus"
)

// RecordedEvent holds a captured event name and payload.
type RecordedEvent struct {
	Event   eventbus.Event
	Payload any
}

// Bus wraps a real EventBus with event recording for tests.
type Bus struct {
	*eventbus.EventBus
	cancel context.CancelFunc

	mu     sync.Mutex
	events []RecordedEvent
}

// New creates a test bus, starts it in a background goroutine, and
// subscribes to all event types for recording. The bus is stopped
// when the test completes.
func New(t *testing.T) *Bus {
	t.Helper()

	bus := eventbus.New(64)
	ctx, cancel := context.WithCancel(context.Background())

	tb := &Bus{
		EventBus: bus,
		cancel:   cancel,
	}

	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		tb.record(eventbus.EventNotificationPublished, p)
	})
	bus.SubscribeTodoCreated(func(p eventbus.TodoCreatedPayload) {
		tb.record(eventbus.EventTodoCreated, p)
	})
	bus.SubscribeTodoUpdated(func(p eventbus.TodoUpdatedPayload) {
		tb.record(eventbus.EventTodoUpdated, p)
	})
	bus.SubscribeTodoDeleted(func(p eventbus.TodoDeletedPayload) {
		tb.record(eventbus.EventTodoDeleted, p)
	})
	bus.SubscribeTodoStatusChanged(func(p eventbus.TodoStatusChangedPayload) {
		tb.record(eventbus.EventTodoStatusChanged, p)
	})
	bus.SubscribeUserRegistered(func(p eventbus.UserRegisteredPayload) {
		tb.record(eventbus.EventUserRegistered, p)
	})
	bus.SubscribeUserLoggedIn(func(p eventbus.UserLoggedInPayload) {
		tb.record(eventbus.EventUserLoggedIn, p)
	})
	bus.SubscribeUserLoggedOut(func(p eventbus.UserLoggedOutPayload) {
		tb.record(eventbus.EventUserLoggedOut, p)
	})

	go bus.Start(ctx)

	t.Cleanup(func() {
		cancel()
	})

	return tb
}

func (tb *Bus) record(event eventbus.Event, payload any) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = append(tb.events, RecordedEvent{Event: event, Payload: payload})
}

// Events returns a copy of all recorded events.
func (tb *Bus) Events() []RecordedEvent {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	out := make([]RecordedEvent, len(tb.events))
	copy(out, tb.events)
	return out
}

// Payloads returns the recorded payloads of one event type, in publish order.
func (tb *Bus) Payloads(event eventbus.Event) []any {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	var out []any
	for _, e := range tb.events {
		if e.Event == event {
			out = append(out, e.Payload)
		}
	}
	return out
}

// Reset clears all recorded events.
func (tb *Bus) Reset() {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.events = nil
}

// WaitFor blocks until an event of the given type is recorded or the timeout expires.
// Returns true if the event was found.
func (tb *Bus) WaitFor(event eventbus.Event, timeout time.Duration) bool {
	return tb.WaitForCount(event, 1, timeout)
}

// WaitForCount blocks until at least n events of the given type are recorded
// or the timeout expires.
func (tb *Bus) WaitForCount(event eventbus.Event, n int, timeout time.Duration) bool {
	deadline := time.After(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		if tb.count(event) >= n {
			return true
		}
		select {
		case <-deadline:
			return false
		case <-ticker.C:
		}
	}
}

func (tb *Bus) count(event eventbus.Event) int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	n := 0
	for _, e := range tb.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

// AssertPublished asserts that an event of the given type was recorded.
func (tb *Bus) AssertPublished(t *testing.T, event eventbus.Event) {
	t.Helper()
	if !tb.WaitFor(event, 500*time.Millisecond) {
		t.Errorf("expected event %q to be published, but it was not", event)
	}
}

// AssertNotPublished asserts that an event of the given type was NOT recorded
// within the given wait period.
func (tb *Bus) AssertNotPublished(t *testing.T, event eventbus.Event, wait time.Duration) {
	t.Helper()
	time.Sleep(wait)
	if tb.count(event) > 0 {
		t.Errorf("expected event %q to NOT be published, but it was", event)
	}
}
