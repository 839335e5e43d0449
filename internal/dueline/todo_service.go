package dueline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/todo"
)

var (
	ErrEmptyTitle = errors.New("title cannot be empty")
	ErrBadPattern = errors.New("invalid title pattern")
)

// AddInput describes a new todo item. Dates use YYYY-MM-DD.
type AddInput struct {
	Title    string
	Priority string
	Due      string
	Alert    string
	Repeat   string
}

// UpdateInput lists the fields to change. Nil fields keep the current value.
// An empty Due clears the due date.
type UpdateInput struct {
	Title    *string
	Priority *string
	Due      *string
	Alert    *string
	Repeat   *string
}

// SeedItem is the JSON shape accepted by Import.
type SeedItem struct {
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	Due      string `json:"due,omitempty"`
	Alert    string `json:"alert,omitempty"`
	Repeat   string `json:"repeat,omitempty"`
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	Status  todo.Status
	Pattern string
}

// Board is the status-partitioned view maintained by the observer.
type Board struct {
	InProgress []todo.Item `json:"in_progress"`
	Completed  []todo.Item `json:"completed"`
}

// TodoService wraps the todo manager with input parsing, glob lookups and
// event publishing. It is not safe for concurrent use.
type TodoService struct {
	manager     *todo.Manager
	factory     *todo.Factory
	observer    *todo.Observer
	bus         *eventbus.EventBus
	sweepOnList bool
	log         zerolog.Logger
}

// NewTodoService creates a TodoService around manager. Every status change
// the manager emits is forwarded to the bus.
func NewTodoService(manager *todo.Manager, factory *todo.Factory, bus *eventbus.EventBus, sweepOnList bool, log zerolog.Logger) *TodoService {
	s := &TodoService{
		manager:     manager,
		factory:     factory,
		observer:    todo.NewObserver(manager),
		bus:         bus,
		sweepOnList: sweepOnList,
		log:         log.With().Str("component", "todo-service").Logger(),
	}
	manager.Subscribe(s.publishStatusChange)
	return s
}

func (s *TodoService) publishStatusChange(change todo.StatusChange) {
	if change.Old == change.New {
		// replacement without a transition; announced as todo.updated
		return
	}

	s.log.Debug().
		Str("id", change.Item.ID).
		Str("old", string(change.Old)).
		Str("new", string(change.New)).
		Msg("status changed")

	s.bus.PublishTodoStatusChanged(eventbus.TodoStatusChangedPayload{
		Item:      *change.Item,
		OldStatus: change.Old,
		NewStatus: change.New,
	})
}

// Add creates an item from in and appends it.
func (s *TodoService) Add(ctx context.Context, in AddInput) (todo.Item, error) {
	item, err := s.build(in)
	if err != nil {
		return todo.Item{}, err
	}

	res, err := todo.NewAddCommand(item, s.manager).Execute()
	if err != nil {
		return todo.Item{}, fmt.Errorf("add todo: %w", err)
	}

	s.log.Info().Ctx(ctx).Str("id", item.ID).Int("index", res.Index).Msg("todo added")
	s.bus.PublishTodoCreated(eventbus.TodoCreatedPayload{Item: *item})

	return *item, nil
}

func (s *TodoService) build(in AddInput) (*todo.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	due, err := todo.ParseDate(in.Due)
	if err != nil {
		return nil, err
	}

	priority := todo.Priority(strings.TrimSpace(in.Priority))
	if priority == "" {
		priority = todo.PriorityMedium
	}

	var opts []todo.Option
	if in.Alert != "" {
		opts = append(opts, todo.WithAlertDate(in.Alert))
	}
	if in.Repeat != "" {
		opts = append(opts, todo.WithRepetition(in.Repeat))
	}

	return s.factory.New(title, priority, due, opts...), nil
}

// Resolve finds an item by id, falling back to the first exact title match.
func (s *TodoService) Resolve(ref string) (*todo.Item, error) {
	if item, ok := s.manager.Get(ref); ok {
		return item, nil
	}
	res, err := todo.NewSearchCommand(ref, s.manager).Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, ref)
	}
	return res.Item, nil
}

// Update replaces the item referenced by ref with a fresh in-progress item
// built from the merged fields. The replacement keeps the original ID.
func (s *TodoService) Update(ctx context.Context, ref string, in UpdateInput) (todo.Item, error) {
	old, err := s.Resolve(ref)
	if err != nil {
		return todo.Item{}, err
	}

	merged := AddInput{
		Title:    old.Title,
		Priority: string(old.Priority),
		Due:      old.FormattedDueDate(),
		Alert:    old.AlertDate,
		Repeat:   old.Repetition,
	}
	if in.Title != nil {
		merged.Title = *in.Title
	}
	if in.Priority != nil {
		merged.Priority = *in.Priority
	}
	if in.Due != nil {
		merged.Due = *in.Due
	}
	if in.Alert != nil {
		merged.Alert = *in.Alert
	}
	if in.Repeat != nil {
		merged.Repeat = *in.Repeat
	}

	replacement, err := s.build(merged)
	if err != nil {
		return todo.Item{}, err
	}

	oldTitle := old.Title
	res, err := todo.NewUpdateCommand(old, replacement, s.manager).Execute()
	if err != nil {
		return todo.Item{}, fmt.Errorf("update todo: %w", err)
	}

	s.log.Info().Ctx(ctx).Str("id", res.Item.ID).Msg("todo updated")
	s.bus.PublishTodoUpdated(eventbus.TodoUpdatedPayload{Item: *res.Item, OldTitle: oldTitle})

	return *res.Item, nil
}

// Delete removes the item referenced by ref.
func (s *TodoService) Delete(ctx context.Context, ref string) (todo.Item, error) {
	item, err := s.Resolve(ref)
	if err != nil {
		return todo.Item{}, err
	}

	res, err := todo.NewDeleteCommand(item, s.manager).Execute()
	if err != nil {
		return todo.Item{}, fmt.Errorf("delete todo: %w", err)
	}
	s.observer.Forget(res.Item.ID)

	s.log.Info().Ctx(ctx).Str("id", res.Item.ID).Msg("todo deleted")
	s.bus.PublishTodoDeleted(eventbus.TodoDeletedPayload{Item: *res.Item})

	return *res.Item, nil
}

// Search returns the position and item of the first exact title match.
func (s *TodoService) Search(_ context.Context, title string) (int, todo.Item, error) {
	res, err := todo.NewSearchCommand(title, s.manager).Execute()
	if err != nil {
		return -1, todo.Item{}, err
	}
	return res.Index, *res.Item, nil
}

// Find returns every item whose title matches the doublestar pattern.
func (s *TodoService) Find(_ context.Context, pattern string) ([]todo.Item, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	return matching(s.manager.All(), pattern), nil
}

// Complete marks the referenced item completed.
func (s *TodoService) Complete(ctx context.Context, ref string) (todo.Item, error) {
	item, err := s.Resolve(ref)
	if err != nil {
		return todo.Item{}, err
	}
	if _, err := s.manager.Complete(item.ID); err != nil {
		return todo.Item{}, err
	}
	s.log.Info().Ctx(ctx).Str("id", item.ID).Msg("todo completed")
	return *item, nil
}

// SetDueDate sets the due date of the referenced item and marks it
// completed. An empty date keeps the current due date.
func (s *TodoService) SetDueDate(ctx context.Context, ref, date string) (todo.Item, error) {
	item, err := s.Resolve(ref)
	if err != nil {
		return todo.Item{}, err
	}
	due, err := todo.ParseDate(date)
	if err != nil {
		return todo.Item{}, err
	}
	if _, err := s.manager.SetDueDate(item.ID, due); err != nil {
		return todo.Item{}, err
	}
	s.log.Info().Ctx(ctx).Str("id", item.ID).Str("due", item.FormattedDueDate()).Msg("due date set")
	return *item, nil
}

// Reschedule moves the due date of the referenced item without touching its
// status. An empty date clears the due date.
func (s *TodoService) Reschedule(ctx context.Context, ref, date string) (todo.Item, error) {
	item, err := s.Resolve(ref)
	if err != nil {
		return todo.Item{}, err
	}
	due, err := todo.ParseDate(date)
	if err != nil {
		return todo.Item{}, err
	}
	if _, err := s.manager.Reschedule(item.ID, due); err != nil {
		return todo.Item{}, err
	}
	s.log.Info().Ctx(ctx).Str("id", item.ID).Str("due", item.FormattedDueDate()).Msg("todo rescheduled")
	return *item, nil
}

// Sweep runs the due-date sweep and returns the items it completed.
func (s *TodoService) Sweep(ctx context.Context) []todo.Item {
	changes := s.manager.DueDateSweep()
	out := make([]todo.Item, 0, len(changes))
	for _, c := range changes {
		out = append(out, *c.Item)
	}
	if len(out) > 0 {
		s.log.Info().Ctx(ctx).Int("count", len(out)).Msg("overdue todos completed")
	}
	return out
}

// List returns items in insertion order, narrowed by f. When enabled, the
// due-date sweep runs first.
func (s *TodoService) List(ctx context.Context, f ListFilter) ([]todo.Item, error) {
	if s.sweepOnList {
		s.Sweep(ctx)
	}

	var items []*todo.Item
	switch f.Status {
	case "":
		items = s.manager.All()
	case todo.StatusCompleted:
		items = s.manager.Completed()
	case todo.StatusInProgress:
		items = s.manager.InProgress()
	default:
		return nil, fmt.Errorf("unknown status %q", f.Status)
	}

	if f.Pattern == "" {
		return snapshot(items), nil
	}
	if !doublestar.ValidatePattern(f.Pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, f.Pattern)
	}
	return matching(items, f.Pattern), nil
}

// Board returns the observer's status partitions.
func (s *TodoService) Board(ctx context.Context) Board {
	if s.sweepOnList {
		s.Sweep(ctx)
	}
	return Board{
		InProgress: snapshot(s.observer.InProgress()),
		Completed:  snapshot(s.observer.Completed()),
	}
}

// Import adds every seed item in order. It stops at the first invalid entry
// and reports how many were added.
func (s *TodoService) Import(ctx context.Context, seeds []SeedItem) (int, error) {
	for i, seed := range seeds {
		_, err := s.Add(ctx, AddInput(seed))
		if err != nil {
			return i, fmt.Errorf("seed item %d: %w", i, err)
		}
	}
	return len(seeds), nil
}

// Now returns the time the engine treats as today.
func (s *TodoService) Now() time.Time {
	return s.manager.Now()
}

// Len returns the number of items.
func (s *TodoService) Len() int {
	return s.manager.Len()
}

func matching(items []*todo.Item, pattern string) []todo.Item {
	out := make([]todo.Item, 0)
	for _, it := range items {
		// Pattern validity is checked by the caller.
		if ok, _ := doublestar.Match(pattern, it.Title); ok {
			out = append(out, *it)
		}
	}
	return out
}

func snapshot(items []*todo.Item) []todo.Item {
	out := make([]todo.Item, 0, len(items))
	for _, it := range items {
		out = append(out, *it)
	}
	return out
}
