package todo

import "slices"

// Observer mirrors the manager's items partitioned by status. It is kept up
// to date by subscribing OnStatusChanged to a Manager. Partitions are keyed
// by item ID, so items that share a title are tracked independently.
type Observer struct {
	completed  []*Item
	inProgress []*Item
}

// NewObserver creates an observer and subscribes it to m when m is non-nil.
func NewObserver(m *Manager) *Observer {
	o := &Observer{}
	if m != nil {
		m.Subscribe(o.OnStatusChanged)
	}
	return o
}

// OnStatusChanged moves the changed item into the partition for its new
// status and drops it from the other one. An item already in the right
// partition is swapped in place, so replacements keep their position.
func (o *Observer) OnStatusChanged(change StatusChange) {
	if change.Item == nil {
		return
	}

	id := change.Item.ID
	if change.New == StatusCompleted {
		o.completed = upsert(o.completed, change.Item)
		o.inProgress = without(o.inProgress, id)
		return
	}

	o.inProgress = upsert(o.inProgress, change.Item)
	o.completed = without(o.completed, id)
}

// Forget removes id from both partitions.
func (o *Observer) Forget(id string) {
	o.completed = without(o.completed, id)
	o.inProgress = without(o.inProgress, id)
}

// Completed returns a copy of the completed partition.
func (o *Observer) Completed() []*Item {
	return slices.Clone(o.completed)
}

// InProgress returns a copy of the in-progress partition.
func (o *Observer) InProgress() []*Item {
	return slices.Clone(o.inProgress)
}

func upsert(items []*Item, item *Item) []*Item {
	if i := slices.IndexFunc(items, func(it *Item) bool { return it.ID == item.ID }); i >= 0 {
		items[i] = item
		return items
	}
	return append(items, item)
}

func without(items []*Item, id string) []*Item {
	return slices.DeleteFunc(items, func(it *Item) bool { return it.ID == id })
}
