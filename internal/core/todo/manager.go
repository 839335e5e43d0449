package todo

import (
	"slices"
	"time"
)

// Manager owns the authoritative, insertion-ordered list of items. It is not
// safe for concurrent use.
type Manager struct {
	items       []*Item
	clock       Clock
	subscribers []func(StatusChange)
}

// NewManager creates an empty manager that reads "today" from clock.
func NewManager(clock Clock) *Manager {
	if clock == nil {
		clock = SystemClock
	}
	return &Manager{clock: clock}
}

// Subscribe registers fn to receive every status change synchronously, in
// registration order.
func (m *Manager) Subscribe(fn func(StatusChange)) {
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) notify(change StatusChange) {
	for _, fn := range m.subscribers {
		fn(change)
	}
}

// Now returns the manager's notion of the current time.
func (m *Manager) Now() time.Time {
	return m.clock.Now()
}

// Len returns the number of items.
func (m *Manager) Len() int {
	return len(m.items)
}

// Add appends item, announces it to subscribers and runs the due-date sweep.
// It returns the index the item was stored at.
func (m *Manager) Add(item *Item) int {
	m.items = append(m.items, item)
	m.notify(StatusChange{Item: item, New: item.Status})
	m.DueDateSweep()
	return len(m.items) - 1
}

// Update replaces the item at index. The replacement takes over the old
// item's ID and is always announced to subscribers, with Old equal to New
// when the status did not change. Reports false when index is out of range
// or the replacement is already stored at another index.
func (m *Manager) Update(index int, item *Item) bool {
	if !m.valid(index) || item == nil {
		return false
	}
	if j := m.storedAt(item); j >= 0 && j != index {
		return false
	}

	old := m.items[index]
	item.ID = old.ID
	m.items[index] = item
	m.notify(StatusChange{Item: item, Old: old.Status, New: item.Status})

	m.DueDateSweep()
	return true
}

// storedAt returns the index holding item itself or another item with its
// ID, or -1.
func (m *Manager) storedAt(item *Item) int {
	return slices.IndexFunc(m.items, func(it *Item) bool {
		return it == item || (item.ID != "" && it != nil && it.ID == item.ID)
	})
}

// Delete removes the item at index. Reports false when index is out of range.
func (m *Manager) Delete(index int) (*Item, bool) {
	if !m.valid(index) {
		return nil, false
	}
	removed := m.items[index]
	m.items = slices.Delete(m.items, index, index+1)
	return removed, true
}

// SearchIndexByTitle returns the index of the first item whose title matches
// exactly, or -1.
func (m *Manager) SearchIndexByTitle(title string) int {
	return slices.IndexFunc(m.items, func(it *Item) bool {
		return it != nil && it.Title == title
	})
}

// IndexOf returns the index of the item with the given id, or -1.
func (m *Manager) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(m.items, func(it *Item) bool {
		return it != nil && it.ID == id
	})
}

// At returns the item at index.
func (m *Manager) At(index int) (*Item, bool) {
	if !m.valid(index) {
		return nil, false
	}
	return m.items[index], true
}

// Get returns the item with the given id.
func (m *Manager) Get(id string) (*Item, bool) {
	return m.At(m.IndexOf(id))
}

// Complete marks the item with the given id completed.
func (m *Manager) Complete(id string) (*Item, error) {
	item, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if change, changed := item.MarkCompleted(); changed {
		m.notify(change)
	}
	return item, nil
}

// SetDueDate sets the due date of the item with the given id, which also
// marks it completed (see Item.SetDueDate).
func (m *Manager) SetDueDate(id string, date time.Time) (*Item, error) {
	item, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	if change, changed := item.SetDueDate(date); changed {
		m.notify(change)
	}
	return item, nil
}

// Reschedule moves the due date of the item with the given id without
// changing its status, then sweeps.
func (m *Manager) Reschedule(id string, date time.Time) (*Item, error) {
	item, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	item.Reschedule(date)
	m.DueDateSweep()
	return item, nil
}

// DueDateSweep completes every item whose due date is strictly before today
// and returns the applied changes. Running it again without a clock change
// applies nothing.
func (m *Manager) DueDateSweep() []StatusChange {
	due := Transitions(m.items, m.clock.Now())

	applied := make([]StatusChange, 0, len(due))
	for _, item := range due {
		if change, changed := item.SetDueDate(time.Time{}); changed {
			m.notify(change)
			applied = append(applied, change)
		}
	}
	return applied
}

// Transitions returns the items that are overdue as of now and not yet
// completed. Both sides are compared at midnight. It does not mutate items.
func Transitions(items []*Item, now time.Time) []*Item {
	today := Normalize(now)

	var due []*Item
	for _, it := range items {
		if it == nil || !it.HasDueDate() || it.Status == StatusCompleted {
			continue
		}
		if today.After(Normalize(it.DueDate)) {
			due = append(due, it)
		}
	}
	return due
}

// All returns every item in insertion order.
func (m *Manager) All() []*Item {
	return slices.Clone(m.items)
}

// Completed returns the items whose status is completed.
func (m *Manager) Completed() []*Item {
	return m.filter(StatusCompleted)
}

// InProgress returns the items whose status is in-progress.
func (m *Manager) InProgress() []*Item {
	return m.filter(StatusInProgress)
}

func (m *Manager) filter(status Status) []*Item {
	var out []*Item
	for _, it := range m.items {
		if it != nil && it.Status == status {
			out = append(out, it)
		}
	}
	return out
}

func (m *Manager) valid(index int) bool {
	return index >= 0 && index < len(m.items)
}
