// Package collection implements the seed-if-empty collection pattern shared
// by every list-shaped domain resource (alerts, notifications, projects,
// services, identity users, audit events).
//
// A collection is stored whole under a single key. The first read that finds
// the key absent or holding an empty list writes the canonical seed data and
// returns it; later reads return whatever is stored. Mutations read the whole
// list, change it in memory, and write it back under a per-key lock so two
// concurrent mutations in the same process cannot lose each other's update.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// Locker hands out one mutex per key. The zero value is ready to use.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock acquires the mutex for key and returns its unlock function.
func (l *Locker) Lock(key string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var defaultLocker = &Locker{}

// SeedFunc returns the canonical example data for a collection. now is the
// time of seeding, for seeds whose timestamps are relative to it.
type SeedFunc[T any] func(now time.Time) []T

// Option configures a Collection.
type Option func(*options)

type options struct {
	locker *Locker
	now    func() time.Time
}

// WithLocker shares a Locker between collections. Collections built without
// one use a process-wide default.
func WithLocker(l *Locker) Option {
	return func(o *options) { o.locker = l }
}

// WithClock overrides time.Now for seeding.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Collection is a list of T stored whole under Key.
type Collection[T any] struct {
	store  store.Store
	key    string
	seed   SeedFunc[T]
	locker *Locker
	now    func() time.Time
}

// New returns a collection stored under key in s.
func New[T any](s store.Store, key string, seed SeedFunc[T], opts ...Option) *Collection[T] {
	o := options{locker: defaultLocker, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{
		store:  s,
		key:    key,
		seed:   seed,
		locker: o.locker,
		now:    o.now,
	}
}

// Key returns the store key the collection lives under.
func (c *Collection[T]) Key() string { return c.key }

// Load returns the stored collection, seeding it first if it is absent or empty.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	items, ok, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return items, nil
	}

	// Seed under the key lock so concurrent first reads write the seed once.
	unlock := c.locker.Lock(c.key)
	defer unlock()
	return c.loadLocked(ctx)
}

// Mutate applies fn to the current collection (seeding it first if needed)
// and writes the result back. If fn returns an error nothing is written and
// the error is returned unchanged.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	unlock := c.locker.Lock(c.key)
	defer unlock()

	items, err := c.loadLocked(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(items)
	if err != nil {
		return nil, err
	}
	if err := store.SetJSON(ctx, c.store, c.key, updated); err != nil {
		return nil, apperr.Store(fmt.Errorf("writing %s: %w", c.key, err))
	}
	return updated, nil
}

func (c *Collection[T]) loadLocked(ctx context.Context) ([]T, error) {
	items, ok, err := c.read(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return items, nil
	}

	items = c.seed(c.now())
	if err := store.SetJSON(ctx, c.store, c.key, items); err != nil {
		return nil, apperr.Store(fmt.Errorf("seeding %s: %w", c.key, err))
	}
	return items, nil
}

// read returns the stored items and whether they are usable (present and
// non-empty).
func (c *Collection[T]) read(ctx context.Context) ([]T, bool, error) {
	items, err := store.GetJSON[[]T](ctx, c.store, c.key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Store(fmt.Errorf("reading %s: %w", c.key, err))
	}
	return items, len(items) > 0, nil
}

// Find returns the index of the first item matching match, or
// apperr.ErrNotFound.
func Find[T any](items []T, match func(T) bool) (int, error) {
	for i, it := range items {
		if match(it) {
			return i, nil
		}
	}
	return -1, apperr.ErrNotFound
}
