// Package inbox serves the user-facing notification inbox.
package inbox

import (
	"context"
	"fmt"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// Key is the store key of the notifications collection.
const Key = "notifications:current"

// Summary is the inbox listing with its counters.
type Summary struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
	TotalCount    int                  `json:"total_count"`
	LastUpdated   time.Time            `json:"last_updated"`
}

// Inbox reads and updates the notifications collection.
type Inbox struct {
	items *collection.Collection[model.Notification]
	now   func() time.Time
}

// New returns an Inbox over s. now may be nil.
func New(s store.Store, now func() time.Time) *Inbox {
	if now == nil {
		now = time.Now
	}
	return &Inbox{
		items: collection.New(s, Key, seed, collection.WithClock(now)),
		now:   now,
	}
}

// List returns all notifications with unread and total counts.
func (b *Inbox) List(ctx context.Context) (Summary, error) {
	items, err := b.items.Load(ctx)
	if err != nil {
		return Summary{}, err
	}
	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	return Summary{
		Notifications: items,
		UnreadCount:   unread,
		TotalCount:    len(items),
		LastUpdated:   b.now().UTC(),
	}, nil
}

// MarkRead sets read and read_at on notification id. Marking an already
// read notification refreshes read_at.
func (b *Inbox) MarkRead(ctx context.Context, id string) (model.Notification, error) {
	var marked model.Notification
	_, err := b.items.Mutate(ctx, func(items []model.Notification) ([]model.Notification, error) {
		i, err := collection.Find(items, func(n model.Notification) bool { return n.ID == id })
		if err != nil {
			return nil, fmt.Errorf("notification %s: %w", id, err)
		}
		now := b.now().UTC()
		items[i].Read = true
		items[i].ReadAt = &now
		marked = items[i]
		return items, nil
	})
	if err != nil {
		return model.Notification{}, err
	}
	return marked, nil
}
