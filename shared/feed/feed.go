// Package feed implements cursor-based pagination over a
// descending-by-recency item feed scoped to one parent entity.
// The same controller drives venue comments, event comments and
// booking lists.
package feed

import (
	"context"
	"errors"
	"sync"
)

// DefaultPageSize matches the page size used by the comment feeds.
const DefaultPageSize = 5

// Cursor is the ordering key of the last fetched item: a store-assigned
// creation timestamp in microseconds since the Unix epoch.
type Cursor = int64

// Source fetches one page of a feed. Implementations are bound to a
// single parent entity (a venue or event id).
type Source[T any] interface {
	// FetchPage returns up to limit items in descending ordering-key
	// order, strictly after (older than) the given cursor. A nil cursor
	// requests the newest page.
	FetchPage(ctx context.Context, after *Cursor, limit int) ([]T, error)
}

// Mutator issues writes against the same feed. After a successful write
// the controller re-fetches the first page instead of patching locally:
// ordering keys are server-assigned and unknown client-side before the
// write completes.
type Mutator[T any] interface {
	Add(ctx context.Context, item T) error
	Update(ctx context.Context, id string, item T) error
	Delete(ctx context.Context, id string) error
}

// ErrNoMutator is returned by Insert/Modify/Remove when the controller
// was built without a Mutator.
var ErrNoMutator = errors.New("feed: controller has no mutator")

// Controller owns the item list and cursor for one feed view.
// Each consumer instantiates its own controller per parent entity.
//
// Once a fetched page comes back smaller than the page size the feed is
// exhausted: further LoadNextPage calls are no-ops until Reset.
type Controller[T any] struct {
	mu         sync.Mutex
	source     Source[T]
	mutator    Mutator[T]
	key        func(T) Cursor
	pageSize   int
	items      []T
	cursor     *Cursor
	exhausted  bool
	generation uint64
}

// New builds a controller over source. mutator may be nil for read-only
// feeds. pageSize <= 0 selects DefaultPageSize.
func New[T any](source Source[T], mutator Mutator[T], key func(T) Cursor, pageSize int) *Controller[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller[T]{
		source:   source,
		mutator:  mutator,
		key:      key,
		pageSize: pageSize,
	}
}

// LoadFirstPage fetches the newest page and replaces the item list.
// A failed fetch leaves the previous items and cursor untouched.
func (c *Controller[T]) LoadFirstPage(ctx context.Context) error {
	c.mu.Lock()
	gen := c.generation
	source := c.source
	limit := c.pageSize
	c.mu.Unlock()

	page, err := source.FetchPage(ctx, nil, limit)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// Reset raced this fetch: the result belongs to a previous
		// parent and must not cross-contaminate the new feed.
		return nil
	}
	c.items = append([]T(nil), page...)
	c.cursor = nil
	if len(page) > 0 {
		k := c.key(page[len(page)-1])
		c.cursor = &k
	}
	c.exhausted = len(page) < limit
	return nil
}

// LoadNextPage appends the page strictly after the current cursor.
// No-op when the cursor is unset or the feed is exhausted.
func (c *Controller[T]) LoadNextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.cursor == nil || c.exhausted {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	after := *c.cursor
	source := c.source
	limit := c.pageSize
	c.mu.Unlock()

	page, err := source.FetchPage(ctx, &after, limit)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.items = append(c.items, page...)
	if len(page) > 0 {
		k := c.key(page[len(page)-1])
		c.cursor = &k
	}
	c.exhausted = len(page) < limit
	return nil
}

// Reset discards all items and cursor state and rebinds the controller
// to a different parent's source. Any in-flight fetch started before
// the reset will be discarded when it lands.
func (c *Controller[T]) Reset(source Source[T], mutator Mutator[T]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.source = source
	c.mutator = mutator
	c.items = nil
	c.cursor = nil
	c.exhausted = false
}

// Insert submits a new item, then re-fetches the first page so the
// displayed list matches store-assigned ordering exactly. A failed
// write does not trigger the re-fetch.
func (c *Controller[T]) Insert(ctx context.Context, item T) error {
	c.mu.Lock()
	m := c.mutator
	c.mu.Unlock()
	if m == nil {
		return ErrNoMutator
	}
	if err := m.Add(ctx, item); err != nil {
		return err
	}
	return c.LoadFirstPage(ctx)
}

// Modify updates an existing item, then re-fetches the first page.
func (c *Controller[T]) Modify(ctx context.Context, id string, item T) error {
	c.mu.Lock()
	m := c.mutator
	c.mu.Unlock()
	if m == nil {
		return ErrNoMutator
	}
	if err := m.Update(ctx, id, item); err != nil {
		return err
	}
	return c.LoadFirstPage(ctx)
}

// Remove deletes an item, then re-fetches the first page.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	m := c.mutator
	c.mu.Unlock()
	if m == nil {
		return ErrNoMutator
	}
	if err := m.Delete(ctx, id); err != nil {
		return err
	}
	return c.LoadFirstPage(ctx)
}

// Drain loads the first page and keeps loading until the feed is
// exhausted, returning everything. Used by in-process consumers
// (analytics, admin booking lists).
func (c *Controller[T]) Drain(ctx context.Context) ([]T, error) {
	if err := c.LoadFirstPage(ctx); err != nil {
		return nil, err
	}
	for !c.Exhausted() {
		if err := c.LoadNextPage(ctx); err != nil {
			return nil, err
		}
	}
	return c.Items(), nil
}

// Items returns a copy of the accumulated item list in feed order.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Controller[T]) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// Cursor returns the current cursor, or nil before the first load and
// after a load that returned no items.
func (c *Controller[T]) CursorKey() *Cursor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == nil {
		return nil
	}
	k := *c.cursor
	return &k
}
