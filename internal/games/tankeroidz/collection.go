package tankeroidz

// Collection is an ordered set of live entities that is safe to mutate while
// a system walks it. Systems iterate Snapshot, mark removals with Remove and
// the round applies them with Commit once the pass is over. Removal is
// idempotent, so two systems can both decide an entity is gone.
type Collection[T any] struct {
	items   []*T
	members map[*T]struct{}
	doomed  map[*T]struct{}
}

// Add appends item. It returns false if item is already a member.
func (c *Collection[T]) Add(item *T) bool {
	if c.members == nil {
		c.members = make(map[*T]struct{})
	}
	if _, ok := c.members[item]; ok {
		return false
	}
	c.members[item] = struct{}{}
	c.items = append(c.items, item)
	return true
}

// Remove marks item for removal at the next Commit. Removing an item that is
// already marked, or was never added, does nothing.
func (c *Collection[T]) Remove(item *T) {
	if _, ok := c.members[item]; !ok {
		return
	}
	if c.doomed == nil {
		c.doomed = make(map[*T]struct{})
	}
	c.doomed[item] = struct{}{}
}

// Removed reports whether item is marked for removal.
func (c *Collection[T]) Removed(item *T) bool {
	_, ok := c.doomed[item]
	return ok
}

// Contains reports whether item is a member that is not marked for removal.
func (c *Collection[T]) Contains(item *T) bool {
	_, ok := c.members[item]
	return ok && !c.Removed(item)
}

// Snapshot returns a copy of the current items in insertion order.
// Items added after the call are not part of it.
func (c *Collection[T]) Snapshot() []*T {
	out := make([]*T, len(c.items))
	copy(out, c.items)
	return out
}

// Live returns the items not marked for removal, in insertion order.
func (c *Collection[T]) Live() []*T {
	out := make([]*T, 0, len(c.items))
	for _, it := range c.items {
		if !c.Removed(it) {
			out = append(out, it)
		}
	}
	return out
}

// Len returns the number of items not marked for removal.
func (c *Collection[T]) Len() int {
	return len(c.items) - len(c.doomed)
}

// Pending returns the number of items marked for removal.
func (c *Collection[T]) Pending() int {
	return len(c.doomed)
}

// Commit drops every marked item, keeping the order of the rest.
// It returns how many were dropped.
func (c *Collection[T]) Commit() int {
	if len(c.doomed) == 0 {
		return 0
	}
	kept := c.items[:0]
	for _, it := range c.items {
		if _, gone := c.doomed[it]; gone {
			delete(c.members, it)
			continue
		}
		kept = append(kept, it)
	}
	// Release pointers left in the tail
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = nil
	}
	c.items = kept
	n := len(c.doomed)
	clear(c.doomed)
	return n
}

// Clear empties the collection.
func (c *Collection[T]) Clear() {
	c.items = nil
	clear(c.members)
	clear(c.doomed)
}
