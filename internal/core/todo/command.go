package todo

// Result reports what a command touched. Index is the position of Item in the
// manager's list at the time the command ran.
type Result struct {
	Index int
	Item  *Item
}

// Command is a single-shot mutation or query bound to a manager. The set of
// commands is closed: only this package can implement it.
type Command interface {
	Execute() (Result, error)
	command()
}

var (
	_ Command = (*AddCommand)(nil)
	_ Command = (*UpdateCommand)(nil)
	_ Command = (*DeleteCommand)(nil)
	_ Command = (*SearchCommand)(nil)
)

// AddCommand appends an item and sweeps due dates.
type AddCommand struct {
	item    *Item
	manager *Manager
}

func NewAddCommand(item *Item, m *Manager) *AddCommand {
	return &AddCommand{item: item, manager: m}
}

func (c *AddCommand) command() {}

func (c *AddCommand) Execute() (Result, error) {
	idx := c.manager.Add(c.item)
	return Result{Index: idx, Item: c.item}, nil
}

// UpdateCommand replaces the item identified by old with replacement.
type UpdateCommand struct {
	old         *Item
	replacement *Item
	manager     *Manager
}

func NewUpdateCommand(old, replacement *Item, m *Manager) *UpdateCommand {
	return &UpdateCommand{old: old, replacement: replacement, manager: m}
}

func (c *UpdateCommand) command() {}

// Execute returns ErrNotFound without mutating anything when old is not in
// the manager, and ErrAlreadyListed when replacement is another listed item.
func (c *UpdateCommand) Execute() (Result, error) {
	idx := c.manager.IndexOf(c.old.ID)
	if idx == -1 {
		return Result{Index: -1}, ErrNotFound
	}

	if !c.manager.Update(idx, c.replacement) {
		return Result{Index: -1}, ErrAlreadyListed
	}
	item, _ := c.manager.At(idx)
	return Result{Index: idx, Item: item}, nil
}

// DeleteCommand removes the item identified by item.
type DeleteCommand struct {
	item    *Item
	manager *Manager
}

func NewDeleteCommand(item *Item, m *Manager) *DeleteCommand {
	return &DeleteCommand{item: item, manager: m}
}

func (c *DeleteCommand) command() {}

func (c *DeleteCommand) Execute() (Result, error) {
	idx := c.manager.IndexOf(c.item.ID)
	if idx == -1 {
		return Result{Index: -1}, ErrNotFound
	}

	removed, _ := c.manager.Delete(idx)
	return Result{Index: idx, Item: removed}, nil
}

// SearchCommand finds the first item with an exactly matching title.
type SearchCommand struct {
	title   string
	manager *Manager
}

func NewSearchCommand(title string, m *Manager) *SearchCommand {
	return &SearchCommand{title: title, manager: m}
}

func (c *SearchCommand) command() {}

func (c *SearchCommand) Execute() (Result, error) {
	idx := c.manager.SearchIndexByTitle(c.title)
	if idx == -1 {
		return Result{Index: -1}, ErrNotFound
	}

	item, _ := c.manager.At(idx)
	return Result{Index: idx, Item: item}, nil
}
