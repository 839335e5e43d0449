package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers published events to subscribers on a single dispatch
// goroutine started with Start. Publishing never blocks: when the buffer is
// full the event is dropped and OnDrop hooks fire.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(buffer int) *EventBus {
	if buffer < 1 {
		buffer = 1
	}
	return &EventBus{
		ch:   make(chan envelope, buffer),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-bus.ch:
			bus.dispatch(env)
		}
	}
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	handlers := make([]func(any), len(bus.subs[env.event]))
	copy(handlers, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					bus.runOnPanic(env.event, env.payload, r)
				}
			}()
			fn(env.payload)
		}()
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()

	bus.runOnSubscribe(event)
}

func (bus *EventBus) PublishNotificationPublished(p NotificationPublishedPayload) {
	bus.send(EventNotificationPublished, p)
}

func (bus *EventBus) SubscribeNotificationPublished(fn func(NotificationPublishedPayload)) {
	bus.subscribe(EventNotificationPublished, func(p any) { fn(p.(NotificationPublishedPayload)) })
}

func (bus *EventBus) PublishTodoCreated(p TodoCreatedPayload) {
	bus.send(EventTodoCreated, p)
}

func (bus *EventBus) SubscribeTodoCreated(fn func(TodoCreatedPayload)) {
	bus.subscribe(EventTodoCreated, func(p any) { fn(p.(TodoCreatedPayload)) })
}

func (bus *EventBus) PublishTodoUpdated(p TodoUpdatedPayload) {
	bus.send(EventTodoUpdated, p)
}

func (bus *EventBus) SubscribeTodoUpdated(fn func(TodoUpdatedPayload)) {
	bus.subscribe(EventTodoUpdated, func(p any) { fn(p.(TodoUpdatedPayload)) })
}

func (bus *EventBus) PublishTodoDeleted(p TodoDeletedPayload) {
	bus.send(EventTodoDeleted, p)
}

func (bus *EventBus) SubscribeTodoDeleted(fn func(TodoDeletedPayload)) {
	bus.subscribe(EventTodoDeleted, func(p any) { fn(p.(TodoDeletedPayload)) })
}

func (bus *EventBus) PublishTodoStatusChanged(p TodoStatusChangedPayload) {
	bus.send(EventTodoStatusChanged, p)
}

func (bus *EventBus) SubscribeTodoStatusChanged(fn func(TodoStatusChangedPayload)) {
	bus.subscribe(EventTodoStatusChanged, func(p any) { fn(p.(TodoStatusChangedPayload)) })
}

func (bus *EventBus) PublishUserRegistered(p UserRegisteredPayload) {
	bus.send(EventUserRegistered, p)
}

func (bus *EventBus) SubscribeUserRegistered(fn func(UserRegisteredPayload)) {
	bus.subscribe(EventUserRegistered, func(p any) { fn(p.(UserRegisteredPayload)) })
}

func (bus *EventBus) PublishUserLoggedIn(p UserLoggedInPayload) {
	bus.send(EventUserLoggedIn, p)
}

func (bus *EventBus) SubscribeUserLoggedIn(fn func(UserLoggedInPayload)) {
	bus.subscribe(EventUserLoggedIn, func(p any) { fn(p.(UserLoggedInPayload)) })
}

func (bus *EventBus) PublishUserLoggedOut(p UserLoggedOutPayload) {
	bus.send(EventUserLoggedOut, p)
}

func (bus *EventBus) SubscribeUserLoggedOut(fn func(UserLoggedOutPayload)) {
	bus.subscribe(EventUserLoggedOut, func(p any) { fn(p.(UserLoggedOutPayload)) })
}
