package application

import (
	"sync/atomic"
	"time"
)

// snapshot is never mutated after it is published. items and index always
// come from the same fetch.
type snapshot[T any] struct {
	items       []T
	index       map[string]T
	refreshedAt time.Time
}

// collection holds the current snapshot of one reference table.
type collection[T any] struct {
	name    string
	key     func(T) string
	current atomic.Pointer[snapshot[T]]
}

func newCollection[T any](name string, key func(T) string) *collection[T] {
	c := &collection[T]{name: name, key: key}
	c.clear()
	return c
}

func (c *collection[T]) load() *snapshot[T] {
	return c.current.Load()
}

// replace builds a new snapshot from items and publishes it in a single store.
func (c *collection[T]) replace(items []T, at time.Time) {
	owned := make([]T, len(items))
	copy(owned, items)

	index := make(map[string]T, len(owned))
	for _, item := range owned {
		index[c.key(item)] = item
	}

	c.current.Store(&snapshot[T]{
		items:       owned,
		index:       index,
		refreshedAt: at,
	})
}

func (c *collection[T]) clear() {
	c.current.Store(&snapshot[T]{
		items:       []T{},
		index:       map[string]T{},
		refreshedAt: time.Time{},
	})
}

func (c *collection[T]) all() []T {
	s := c.load()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

func (c *collection[T]) byID(id string) (T, bool) {
	item, ok := c.load().index[id]
	return item, ok
}

// byIDs drops ids that are not present, keeping the caller's order for the rest.
func (c *collection[T]) byIDs(ids []string) []T {
	found, _ := c.resolve(ids)
	return found
}

func (c *collection[T]) resolve(ids []string) ([]T, []string) {
	s := c.load()
	found := make([]T, 0, len(ids))
	var missing []string
	for _, id := range ids {
		if item, ok := s.index[id]; ok {
			found = append(found, item)
			continue
		}
		missing = append(missing, id)
	}
	return found, missing
}

func (c *collection[T]) count() int {
	return len(c.load().items)
}

func (c *collection[T]) lastRefreshed() *time.Time {
	at := c.load().refreshedAt
	if at.IsZero() {
		return nil
	}
	return &at
}
