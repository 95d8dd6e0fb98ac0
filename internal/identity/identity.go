// Package identity serves the user directory, the audit trail, user
// profiles and the per-user dashboard.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// Store keys.
const (
	KeyUsers        = "identity:users"
	KeyAudit        = "audit:events"
	profilePrefix   = "user_profile:"
	dashboardPrefix = "user_dashboard:"

	DefaultAuditLimit = 50
	// MaxAuditEvents bounds the stored trail; older events are dropped.
	MaxAuditEvents = 500
)

// UserList is the directory listing.
type UserList struct {
	Users  []model.IdentityUser `json:"users"`
	Total  int                  `json:"total"`
	Active int                  `json:"active"`
}

// AuditPage is a window onto the audit trail.
type AuditPage struct {
	Events      []model.AuditEvent `json:"events"`
	Total       int                `json:"total"`
	Limit       int                `json:"limit"`
	LastUpdated time.Time          `json:"last_updated"`
}

// Directory reads identity data from the store.
type Directory struct {
	store store.Store
	users *collection.Collection[model.IdentityUser]
	audit *collection.Collection[model.AuditEvent]
	now   func() time.Time
}

// NewDirectory returns a Directory over s. now may be nil.
func NewDirectory(s store.Store, now func() time.Time) *Directory {
	if now == nil {
		now = time.Now
	}
	return &Directory{
		store: s,
		users: collection.New(s, KeyUsers, seedUsers, collection.WithClock(now)),
		audit: collection.New(s, KeyAudit, seedAudit, collection.WithClock(now)),
		now:   now,
	}
}

// Users returns the directory with total and active counts.
func (d *Directory) Users(ctx context.Context) (UserList, error) {
	users, err := d.users.Load(ctx)
	if err != nil {
		return UserList{}, err
	}
	active := 0
	for _, u := range users {
		if u.Status == "Active" {
			active++
		}
	}
	return UserList{Users: users, Total: len(users), Active: active}, nil
}

// AuditEvents returns the first limit events. limit <= 0 means
// DefaultAuditLimit.
func (d *Directory) AuditEvents(ctx context.Context, limit int) (AuditPage, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}
	events, err := d.audit.Load(ctx)
	if err != nil {
		return AuditPage{}, err
	}
	total := len(events)
	return AuditPage{
		Events:      events[:min(limit, total)],
		Total:       total,
		Limit:       limit,
		LastUpdated: d.now().UTC(),
	}, nil
}

// RecordAudit prepends ev to the audit trail, assigning the next AUD id. Only
// the newest MaxAuditEvents events are kept.
func (d *Directory) RecordAudit(ctx context.Context, ev model.AuditEvent) (model.AuditEvent, error) {
	_, err := d.audit.Mutate(ctx, func(events []model.AuditEvent) ([]model.AuditEvent, error) {
		ev.ID = nextAuditID(events)
		if ev.Timestamp.IsZero() {
			ev.Timestamp = d.now().UTC()
		}
		events = append([]model.AuditEvent{ev}, events...)
		return events[:min(len(events), MaxAuditEvents)], nil
	})
	if err != nil {
		return model.AuditEvent{}, err
	}
	return ev, nil
}

// nextAuditID returns one past the highest AUD number in events.
func nextAuditID(events []model.AuditEvent) string {
	var top int
	for _, e := range events {
		var n int
		if _, err := fmt.Sscanf(e.ID, "AUD-%d", &n); err == nil {
			top = max(top, n)
		}
	}
	return fmt.Sprintf("AUD-%03d", top+1)
}

// Profile returns the stored profile of user id.
func (d *Directory) Profile(ctx context.Context, id string) (model.UserProfile, error) {
	p, err := store.GetJSON[model.UserProfile](ctx, d.store, profilePrefix+id)
	if errors.Is(err, store.ErrNotFound) {
		return model.UserProfile{}, fmt.Errorf("user %s: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return model.UserProfile{}, apperr.Store(fmt.Errorf("reading profile: %w", err))
	}
	return p, nil
}

// SaveProfile writes p under its id.
func (d *Directory) SaveProfile(ctx context.Context, p model.UserProfile) error {
	if p.ID == "" {
		return apperr.Invalid(errors.New("profile id is required"))
	}
	if err := store.SetJSON(ctx, d.store, profilePrefix+p.ID, p); err != nil {
		return apperr.Store(fmt.Errorf("writing profile: %w", err))
	}
	return nil
}
