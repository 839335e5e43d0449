// Package todo defines the todo item domain model and its lifecycle engine:
// the manager that owns the item list, the due-date sweep, the status
// observer and the closed set of commands that mutate the list.
package todo

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

// ErrNotFound is returned when a command or lookup target does not exist.
var ErrNotFound = errors.New("todo item not found")

// ErrAlreadyListed is returned when an update replacement is already stored
// at another position.
var ErrAlreadyListed = errors.New("todo item already listed")

// Status represents the lifecycle state of a todo item.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Priority is a free-form priority label. The constants are the labels the
// shell offers; any other label is carried as-is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// StatusChange describes a single status transition of an item. Old is empty
// when the item was just added to a manager. Old equals New when an item was
// replaced without changing status.
type StatusChange struct {
	Item *Item
	Old  Status
	New  Status
}

// Item represents a single task.
type Item struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Priority   Priority  `json:"priority"`
	DueDate    time.Time `json:"due_date,omitzero"`
	AlertDate  string    `json:"alert_date,omitempty"`
	Repetition string    `json:"repetition,omitempty"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (it *Item) SetTitle(title string)       { it.Title = title }
func (it *Item) SetPriority(p Priority)      { it.Priority = p }
func (it *Item) SetAlertDate(alert string)   { it.AlertDate = alert }
func (it *Item) SetRepetition(repeat string) { it.Repetition = repeat }

// HasDueDate reports whether a due date is set.
func (it *Item) HasDueDate() bool {
	return !it.DueDate.IsZero()
}

// SetDueDate sets the due date and marks the item completed. The returned
// change is only meaningful when ok is true, i.e. when the status actually
// moved. Use Reschedule to move a due date without touching the status.
func (it *Item) SetDueDate(date time.Time) (StatusChange, bool) {
	if !date.IsZero() {
		it.DueDate = Normalize(date)
	}
	return it.transition(StatusCompleted)
}

// MarkCompleted marks the item completed regardless of its due date.
func (it *Item) MarkCompleted() (StatusChange, bool) {
	return it.transition(StatusCompleted)
}

// Reschedule moves the due date. Status is unaffected. A zero date clears it.
func (it *Item) Reschedule(date time.Time) {
	if date.IsZero() {
		it.DueDate = time.Time{}
		return
	}
	it.DueDate = Normalize(date)
}

func (it *Item) transition(to Status) (StatusChange, bool) {
	from := it.Status
	it.Status = to
	if from == to {
		return StatusChange{}, false
	}
	return StatusChange{Item: it, Old: from, New: to}, true
}

// DaysUntilDue returns the signed number of days from now until the due date,
// rounded up. ok is false when no due date is set.
func (it *Item) DaysUntilDue(now time.Time) (days int, ok bool) {
	if !it.HasDueDate() {
		return 0, false
	}
	diff := it.DueDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24)), true
}

// FormattedDueDate renders the due date as YYYY-MM-DD, or "" when unset.
func (it *Item) FormattedDueDate() string {
	if !it.HasDueDate() {
		return ""
	}
	return it.DueDate.Format(DateLayout)
}

// Normalize truncates t to midnight in its own location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD date in local time. An empty string yields
// the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
