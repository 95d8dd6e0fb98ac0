// Package alerts manages the incident board: the seeded alerts collection and
// its status lifecycle.
//
// Any status may move to any other status, including reopening a resolved
// alert. New alerts always start Active.
package alerts

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/go-playground/validator/v10"
)

// Key is the store key of the alerts collection.
const Key = "alerts:current"

// DefaultNotifyTimeout bounds how long Create and UpdateStatus wait on the
// notifier.
const DefaultNotifyTimeout = 5 * time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewAlert is the caller-supplied part of an alert. Fields left empty stay
// empty; Timestamp defaults to the creation time.
type NewAlert struct {
	Severity    string     `json:"severity" validate:"required,oneof=Low Medium High Critical"`
	Title       string     `json:"title" validate:"required,max=256"`
	Description string     `json:"description" validate:"max=4096"`
	Service     string     `json:"service" validate:"max=256"`
	Impact      string     `json:"impact" validate:"max=1024"`
	Assignee    string     `json:"assignee" validate:"max=256"`
	Environment string     `json:"environment" validate:"max=64"`
	Timestamp   *time.Time `json:"timestamp"`
}

// Validate checks the fields of a new alert.
func (n NewAlert) Validate() error {
	if err := validate.Struct(n); err != nil {
		return apperr.Invalid(err)
	}
	return nil
}

// StatusUpdate moves an alert to Status. Resolution replaces the stored
// resolution only when non-empty.
type StatusUpdate struct {
	Status     string `json:"status" validate:"required,oneof=Active Investigating Acknowledged Resolved"`
	Resolution string `json:"resolution" validate:"max=4096"`
}

// Validate checks that the target status is known.
func (u StatusUpdate) Validate() error {
	if err := validate.Struct(u); err != nil {
		return apperr.Invalid(err)
	}
	return nil
}

// Notifier receives alert events after they are persisted.
type Notifier interface {
	Notify(ctx context.Context, ev model.AlertEvent)
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNotifier sends created and status-changed events to n.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithNotifyTimeout overrides DefaultNotifyTimeout.
func WithNotifyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.notifyTimeout = d
		}
	}
}

// WithRand draws id tokens from r.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.token = func() int { return r.IntN(1000) } }
}

// Service is the alert lifecycle over the alerts collection.
type Service struct {
	alerts        *collection.Collection[model.Alert]
	notifier      Notifier
	notifyTimeout time.Duration
	now           func() time.Time
	token         func() int
}

// New returns a Service storing alerts in s.
func New(s store.Store, opts ...Option) *Service {
	svc := &Service{
		now:           time.Now,
		notifyTimeout: DefaultNotifyTimeout,
		token:         func() int { return rand.IntN(1000) },
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.alerts = collection.New(s, Key, seed, collection.WithClock(svc.now))
	return svc
}

// List returns all alerts, newest first.
func (s *Service) List(ctx context.Context) ([]model.Alert, error) {
	return s.alerts.Load(ctx)
}

// Create validates in, assigns a fresh id and stores the alert at the front
// of the collection.
func (s *Service) Create(ctx context.Context, in NewAlert) (model.Alert, error) {
	if err := in.Validate(); err != nil {
		return model.Alert{}, err
	}

	var created model.Alert
	_, err := s.alerts.Mutate(ctx, func(items []model.Alert) ([]model.Alert, error) {
		now := s.now().UTC()
		taken := make(map[string]bool, len(items))
		for _, a := range items {
			taken[a.ID] = true
		}

		created = model.Alert{
			ID:          s.newID(now, taken),
			Severity:    in.Severity,
			Title:       in.Title,
			Description: in.Description,
			Service:     in.Service,
			Status:      model.AlertActive,
			Timestamp:   now,
			Impact:      in.Impact,
			Assignee:    in.Assignee,
			Environment: in.Environment,
		}
		if in.Timestamp != nil {
			created.Timestamp = in.Timestamp.UTC()
		}
		return append([]model.Alert{created}, items...), nil
	})
	if err != nil {
		return model.Alert{}, err
	}

	slog.Info("alert created", "id", created.ID, "severity", created.Severity, "service", created.Service)
	s.notify(ctx, model.AlertCreated, created)
	return created, nil
}

// UpdateStatus sets the status of alert id. It returns apperr.ErrNotFound
// without writing if no alert has that id.
func (s *Service) UpdateStatus(ctx context.Context, id string, upd StatusUpdate) (model.Alert, error) {
	if err := upd.Validate(); err != nil {
		return model.Alert{}, err
	}

	var updated model.Alert
	_, err := s.alerts.Mutate(ctx, func(items []model.Alert) ([]model.Alert, error) {
		i, err := collection.Find(items, func(a model.Alert) bool { return a.ID == id })
		if err != nil {
			return nil, fmt.Errorf("alert %s: %w", id, err)
		}
		now := s.now().UTC()
		items[i].Status = upd.Status
		items[i].UpdatedAt = &now
		if upd.Resolution != "" {
			items[i].Resolution = upd.Resolution
		}
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return model.Alert{}, err
	}

	slog.Info("alert status changed", "id", id, "status", updated.Status)
	s.notify(ctx, model.AlertStatusChanged, updated)
	return updated, nil
}

// notify delivers the event under its own deadline. The alert is already
// stored, so the caller going away does not cancel delivery.
func (s *Service) notify(ctx context.Context, kind string, a model.Alert) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()
	s.notifier.Notify(ctx, model.AlertEvent{Kind: kind, Alert: a, Timestamp: s.now().UTC()})
}

// newID returns ALT-<ms>-<NNN> not present in taken. The token is redrawn on
// collision; once the millisecond is exhausted the next one is used.
func (s *Service) newID(now time.Time, taken map[string]bool) string {
	ms := now.UnixMilli()
	for {
		for range 64 {
			id := fmt.Sprintf("ALT-%d-%03d", ms, s.token())
			if !taken[id] {
				return id
			}
		}
		for n := range 1000 {
			id := fmt.Sprintf("ALT-%d-%03d", ms, n)
			if !taken[id] {
				return id
			}
		}
		ms++
	}
}
