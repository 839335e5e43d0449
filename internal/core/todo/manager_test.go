package todo

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture wires a manager, observer and factory around a fixed "today".
type fixture struct {
	now     time.Time
	manager *Manager
	factory *Factory
	changes []StatusChange
}

func newFixture(t *testing.T, today string) *fixture {
	t.Helper()

	now := date(t, today).Add(10 * time.Hour)
	clock := FixedClock(now)

	seq := 0
	f := &fixture{
		now:     now,
		manager: NewManager(clock),
		factory: NewFactory(clock, 8).WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	f.manager.Subscribe(func(c StatusChange) { f.changes = append(f.changes, c) })
	return f
}

func (f *fixture) item(t *testing.T, title, due string) *Item {
	t.Helper()
	var d time.Time
	if due != "" {
		d = date(t, due)
	}
	return f.factory.New(title, PriorityMedium, d)
}

func statuses(items []*Item) map[string]Status {
	out := make(map[string]Status, len(items))
	for _, it := range items {
		out[it.ID] = it.Status
	}
	return out
}

func TestManager_Add_PreservesInsertionOrder(t *testing.T) {
	f := newFixture(t, "2023-11-01")

	for i, title := range []string{"a", "b", "c"} {
		it := f.item(t, title, "")
		idx := f.manager.Add(it)

		all := f.manager.All()
		assert.Equal(t, i, idx)
		require.Len(t, all, i+1)
		assert.Same(t, it, all[len(all)-1])
	}
}

func TestManager_Add_AnnouncesItem(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	it := f.item(t, "a", "")
	f.manager.Add(it)

	require.Len(t, f.changes, 1)
	assert.Equal(t, Status(""), f.changes[0].Old)
	assert.Equal(t, StatusInProgress, f.changes[0].New)
}

func TestManager_SearchIndexByTitle(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	for _, title := range []string{"alpha", "Task", "beta", "Task"} {
		f.manager.Add(f.item(t, title, ""))
	}

	assert.Equal(t, 1, f.manager.SearchIndexByTitle("Task"), "first match wins")
	assert.Equal(t, 2, f.manager.SearchIndexByTitle("beta"))
	assert.Equal(t, -1, f.manager.SearchIndexByTitle("task"), "match is case-sensitive")
	assert.Equal(t, -1, f.manager.SearchIndexByTitle("missing"))
	assert.Equal(t, -1, NewManager(nil).SearchIndexByTitle("anything"))
}

func TestManager_DueDateSweep_CompletesOverdue(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	overdue := f.item(t, "overdue", "2023-10-31")
	today := f.item(t, "today", "2023-11-01")
	future := f.item(t, "future", "2023-11-02")
	undated := f.item(t, "undated", "")

	for _, it := range []*Item{overdue, today, future, undated} {
		f.manager.Add(it)
	}

	assert.Equal(t, StatusCompleted, overdue.Status)
	assert.Equal(t, StatusInProgress, today.Status, "only strictly earlier due dates complete")
	assert.Equal(t, StatusInProgress, future.Status)
	assert.Equal(t, StatusInProgress, undated.Status)

	assert.Equal(t, []*Item{overdue}, f.manager.Completed())
	assert.NotContains(t, f.manager.InProgress(), overdue)
	assert.Len(t, f.manager.InProgress(), 3)
}

func TestManager_DueDateSweep_Idempotent(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	f.manager.Add(f.item(t, "a", "2023-10-01"))
	f.manager.Add(f.item(t, "b", "2023-12-01"))
	f.manager.Add(f.item(t, "c", "2023-10-31"))

	first := statuses(f.manager.All())
	assert.Empty(t, f.manager.DueDateSweep(), "add already swept")
	assert.Equal(t, first, statuses(f.manager.All()))

	assert.Empty(t, f.manager.DueDateSweep())
	assert.Equal(t, first, statuses(f.manager.All()))
}

func TestManager_DueDateSweep_ClockAdvance(t *testing.T) {
	now := date(t, "2023-11-01")
	clock := ClockFunc(func() time.Time { return now })
	m := NewManager(clock)
	it := NewFactory(clock, 8).New("a", PriorityLow, date(t, "2023-11-02"))
	m.Add(it)
	require.Equal(t, StatusInProgress, it.Status)

	now = date(t, "2023-11-03")
	changes := m.DueDateSweep()
	require.Len(t, changes, 1)
	assert.Equal(t, StatusCompleted, it.Status)

	now = date(t, "2023-10-01")
	assert.Empty(t, m.DueDateSweep())
	assert.Equal(t, StatusCompleted, it.Status, "status never reverts automatically")
}

func TestTransitions_Pure(t *testing.T) {
	items := []*Item{
		{ID: "a", Status: StatusInProgress, DueDate: date(t, "2023-10-30")},
		{ID: "b", Status: StatusCompleted, DueDate: date(t, "2023-10-30")},
		{ID: "c", Status: StatusInProgress},
		nil,
	}

	due := Transitions(items, date(t, "2023-11-01"))
	require.Len(t, due, 1)
	assert.Equal(t, "a", due[0].ID)
	assert.Equal(t, StatusInProgress, items[0].Status, "transitions do not mutate")
}

func TestManager_Update(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	old := f.item(t, "old", "")
	f.manager.Add(old)

	replacement := f.item(t, "new", "2023-10-01")
	require.True(t, f.manager.Update(0, replacement))

	got, ok := f.manager.At(0)
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, old.ID, got.ID, "replacement inherits the stable id")
	assert.Equal(t, StatusCompleted, got.Status, "update re-runs the sweep")

	assert.False(t, f.manager.Update(5, f.item(t, "x", "")))
	assert.False(t, f.manager.Update(-1, f.item(t, "x", "")))
}

func TestManager_Update_NotifiesStatusReset(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	old := f.item(t, "old", "")
	f.manager.Add(old)
	_, err := f.manager.Complete(old.ID)
	require.NoError(t, err)
	f.changes = nil

	f.manager.Update(0, f.item(t, "again", ""))

	require.Len(t, f.changes, 1)
	assert.Equal(t, StatusCompleted, f.changes[0].Old)
	assert.Equal(t, StatusInProgress, f.changes[0].New)
}

func TestManager_Update_AnnouncesSameStatusReplacement(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	f.manager.Add(f.item(t, "draft", ""))
	f.changes = nil

	replacement := f.item(t, "final", "")
	require.True(t, f.manager.Update(0, replacement))

	require.Len(t, f.changes, 1)
	assert.Same(t, replacement, f.changes[0].Item)
	assert.Equal(t, StatusInProgress, f.changes[0].Old)
	assert.Equal(t, StatusInProgress, f.changes[0].New)
}

func TestManager_Update_RejectsListedReplacement(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	a, b := f.item(t, "a", ""), f.item(t, "b", "")
	f.manager.Add(a)
	f.manager.Add(b)
	bID := b.ID

	assert.False(t, f.manager.Update(0, b))
	assert.False(t, f.manager.Update(0, &Item{ID: bID, Title: "copy of b"}))

	assert.Equal(t, []string{a.ID, bID}, ids(f.manager.All()))
	assert.Equal(t, 1, f.manager.IndexOf(bID))

	assert.True(t, f.manager.Update(1, b), "replacing an item with itself is allowed")
}

func TestManager_Delete(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	a, b := f.item(t, "a", ""), f.item(t, "b", "")
	f.manager.Add(a)
	f.manager.Add(b)

	removed, ok := f.manager.Delete(0)
	require.True(t, ok)
	assert.Same(t, a, removed)
	assert.Equal(t, []*Item{b}, f.manager.All())

	_, ok = f.manager.Delete(3)
	assert.False(t, ok)
	assert.Equal(t, 1, f.manager.Len())
}

func TestManager_Complete(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	it := f.item(t, "a", "")
	f.manager.Add(it)
	f.changes = nil

	got, err := f.manager.Complete(it.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	require.Len(t, f.changes, 1)
	assert.Equal(t, StatusCompleted, f.changes[0].New)

	_, err = f.manager.Complete(it.ID)
	require.NoError(t, err)
	assert.Len(t, f.changes, 1, "completing twice notifies once")

	_, err = f.manager.Complete("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_SetDueDate_Completes(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	it := f.item(t, "a", "")
	f.manager.Add(it)

	got, err := f.manager.SetDueDate(it.ID, date(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, "2024-01-01", got.FormattedDueDate())

	_, err = f.manager.SetDueDate("missing", date(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Reschedule(t *testing.T) {
	f := newFixture(t, "2023-11-01")
	it := f.item(t, "a", "2023-12-01")
	f.manager.Add(it)

	got, err := f.manager.Reschedule(it.ID, date(t, "2024-01-01"))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.Equal(t, "2024-01-01", got.FormattedDueDate())

	got, err = f.manager.Reschedule(it.ID, date(t, "2023-10-01"))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status, "rescheduling into the past is swept")

	_, err = f.manager.Reschedule("missing", time.Time{})
	assert.ErrorIs(t, err, ErrNotFound)
}
