// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within dueline.
package eventbus

import (
	"github.com/colonyops/dueline/internal/core/notify"
	"github.com/colonyops/dueline/internal/core/todo"
)

// Event names a published event.
type Event string

// Keep sorted A-Z.
const (
	EventNotificationPublished Event = "notification.published"
	EventTodoCreated           Event = "todo.created"
	EventTodoDeleted           Event = "todo.deleted"
	EventTodoStatusChanged     Event = "todo.status-changed"
	EventTodoUpdated           Event = "todo.updated"
	EventUserLoggedIn          Event = "user.logged-in"
	EventUserLoggedOut         Event = "user.logged-out"
	EventUserRegistered        Event = "user.registered"
)

// Payloads carry copies of items, never the live pointers owned by the
// todo manager, because subscribers run on the bus goroutine.

// NotificationPublishedPayload is emitted when a user-facing notification
// should be shown.
type NotificationPublishedPayload struct {
	Level   notify.Level
	Message string
}

// TodoCreatedPayload is emitted when an item is added.
type TodoCreatedPayload struct {
	Item todo.Item
}

// TodoUpdatedPayload is emitted when an item is replaced.
type TodoUpdatedPayload struct {
	Item     todo.Item
	OldTitle string
}

// TodoDeletedPayload is emitted when an item is removed.
type TodoDeletedPayload struct {
	Item todo.Item
}

// TodoStatusChangedPayload is emitted for every status transition.
type TodoStatusChangedPayload struct {
	Item      todo.Item
	OldStatus todo.Status
	NewStatus todo.Status
}

// UserRegisteredPayload is emitted when a user registers.
type UserRegisteredPayload struct {
	UserID string
	Name   string
}

// UserLoggedInPayload is emitted when a session starts.
type UserLoggedInPayload struct {
	UserID string
	Token  string
}

// UserLoggedOutPayload is emitted when a session ends.
type UserLoggedOutPayload struct {
	UserID string
}
