package eventbus

import (
	"fmt"

	"github.com/colonyops/dueline/internal/core/notify"
	"github.com/colonyops/dueline/internal/core/todo"
)

// NotificationRouter maps domain events to user-facing notifications.
type NotificationRouter struct {
	bus *EventBus
}

// NewNotificationRouter constructs a router for event-to-notification mappings.
func NewNotificationRouter(bus *EventBus) *NotificationRouter {
	return &NotificationRouter{bus: bus}
}

// Register subscribes all supported event mappings.
func (r *NotificationRouter) Register() {
	if r == nil || r.bus == nil {
		return
	}

	r.bus.SubscribeTodoStatusChanged(func(p TodoStatusChangedPayload) {
		// Items entering the list are announced as todo.created instead.
		if p.OldStatus == "" {
			return
		}
		if p.NewStatus == todo.StatusCompleted {
			r.notifyf(notify.LevelInfo, "todo %q completed", p.Item.Title)
			return
		}
		r.notifyf(notify.LevelWarning, "todo %q is in progress again", p.Item.Title)
	})

	r.bus.SubscribeTodoDeleted(func(p TodoDeletedPayload) {
		r.notifyf(notify.LevelInfo, "todo %q deleted", p.Item.Title)
	})

	r.bus.SubscribeUserLoggedIn(func(p UserLoggedInPayload) {
		r.notifyf(notify.LevelInfo, "welcome, %s", p.UserID)
	})

	r.bus.SubscribeUserLoggedOut(func(p UserLoggedOutPayload) {
		r.notifyf(notify.LevelInfo, "goodbye, %s", p.UserID)
	})
}

func (r *NotificationRouter) notifyf(level notify.Level, format string, args ...any) {
	r.bus.PublishNotificationPublished(NotificationPublishedPayload{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}
