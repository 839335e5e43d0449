package shell

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/dueline/internal/core/history"
	"github.com/colonyops/dueline/internal/core/todo"
	"github.com/colonyops/dueline/internal/core/user"
	"github.com/colonyops/dueline/internal/dueline"
)

func TestRenderTodos(t *testing.T) {
	now := time.Date(2023, time.November, 1, 9, 0, 0, 0, time.Local)
	items := []todo.Item{
		{ID: "a1", Title: "pay rent", Priority: todo.PriorityHigh, DueDate: time.Date(2023, time.October, 30, 0, 0, 0, 0, time.Local), Status: todo.StatusCompleted},
		{ID: "b2", Title: "call mom", Priority: todo.PriorityLow, AlertDate: "2023-11-04", Repetition: "weekly", Status: todo.StatusInProgress},
	}

	var buf bytes.Buffer
	renderTodos(&buf, items, now)
	out := buf.String()

	for _, want := range []string{"TITLE", "ALERT", "REPEAT", "pay rent", "2023-11-04", "weekly", "2023-10-30", "completed", "call mom", "in-progress", "a1", "b2"} {
		assert.Contains(t, out, want)
	}
}

func TestPriorityStyle(t *testing.T) {
	for _, p := range []todo.Priority{todo.PriorityHigh, todo.PriorityMedium, todo.PriorityLow} {
		_, ok := priorityStyle(p)
		assert.True(t, ok, p)
	}
	_, ok := priorityStyle("urgent")
	assert.False(t, ok, "unknown labels fall back to the plain cell style")
}

func TestRenderTodos_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderTodos(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "no todos")
}

func TestRenderBoard(t *testing.T) {
	var buf bytes.Buffer
	renderBoard(&buf, dueline.Board{
		InProgress: []todo.Item{{Title: "write tests"}},
	})

	out := buf.String()
	assert.Contains(t, out, "In progress (1)")
	assert.Contains(t, out, "write tests")
	assert.Contains(t, out, "Completed (0)")
	assert.Contains(t, out, "nothing here")
}

func TestRenderUsers(t *testing.T) {
	var buf bytes.Buffer
	renderUsers(&buf, []user.User{{ID: "alice", Name: "Alice", Email: "a@example.com"}})
	assert.Contains(t, buf.String(), "a@example.com")
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	renderHistory(&buf, []history.Entry{
		{ID: 1, Command: "add", Args: []string{"buy milk"}, Timestamp: time.Date(2023, 11, 1, 9, 30, 0, 0, time.Local)},
		{ID: 2, Command: "delete", Args: []string{"nope"}, Error: "todo item not found"},
	})

	out := buf.String()
	assert.Contains(t, out, "History (2)")
	assert.Contains(t, out, "09:30:00")
	assert.Contains(t, out, "add 'buy milk'")
	assert.Contains(t, out, "delete nope")

	buf.Reset()
	renderHistory(&buf, nil)
	assert.Contains(t, buf.String(), "no history")
}
