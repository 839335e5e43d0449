// Package notify holds user-facing notifications until the shell prints them.
package notify

import (
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Buffer collects notifications pushed from the event bus goroutine and hands
// them to the shell loop in order.
type Buffer struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewBuffer constructs an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{notifications: make([]Notification, 0)}
}

// Push appends a notification, stamping CreatedAt when unset.
func (b *Buffer) Push(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()
}

// Drain returns all buffered notifications and clears the buffer.
func (b *Buffer) Drain() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}

	out := make([]Notification, len(b.notifications))
	copy(out, b.notifications)
	b.notifications = b.notifications[:0]
	return out
}

// Len returns the number of buffered notifications.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.notifications)
}
