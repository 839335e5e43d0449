package todo

import (
	"time"

	"github.com/colonyops/dueline/pkg/randid"
)

// Clock supplies the current time for due-date comparisons.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Option configures optional item fields at construction.
type Option func(*Item)

// WithAlertDate sets the auxiliary alert date label.
func WithAlertDate(alert string) Option {
	return func(it *Item) { it.AlertDate = alert }
}

// WithRepetition sets the recurrence label.
func WithRepetition(repeat string) Option {
	return func(it *Item) { it.Repetition = repeat }
}

// Factory builds new items. It performs no side effects on any manager.
type Factory struct {
	clock Clock
	newID func() string
}

// NewFactory creates a factory that generates ids of idLength characters.
func NewFactory(clock Clock, idLength int) *Factory {
	if clock == nil {
		clock = SystemClock
	}
	if idLength <= 0 {
		idLength = 8
	}
	return &Factory{
		clock: clock,
		newID: func() string { return randid.Generate(idLength) },
	}
}

// WithIDGenerator replaces the id generator. Used by tests that need
// predictable ids.
func (f *Factory) WithIDGenerator(gen func() string) *Factory {
	f.newID = gen
	return f
}

// New creates an in-progress item. A zero due date means no due date.
func (f *Factory) New(title string, priority Priority, due time.Time, opts ...Option) *Item {
	it := &Item{
		ID:        f.newID(),
		Title:     title,
		Priority:  priority,
		Status:    StatusInProgress,
		CreatedAt: f.clock.Now(),
	}
	if !due.IsZero() {
		it.DueDate = Normalize(due)
	}
	for _, opt := range opts {
		opt(it)
	}
	return it
}
