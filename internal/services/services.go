// Package services serves the read-only service health overview.
package services

import (
	"context"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// Key is the store key of the service health collection.
const Key = "services:health"

// Registry lists monitored services.
type Registry struct {
	items *collection.Collection[model.Service]
}

// New returns a Registry over s. now may be nil.
func New(s store.Store, now func() time.Time) *Registry {
	opts := []collection.Option{}
	if now != nil {
		opts = append(opts, collection.WithClock(now))
	}
	return &Registry{items: collection.New(s, Key, seed, opts...)}
}

// List returns every monitored service.
func (r *Registry) List(ctx context.Context) ([]model.Service, error) {
	return r.items.Load(ctx)
}

func seed(now time.Time) []model.Service {
	now = now.UTC()
	return []model.Service{
		{ID: "SVC-001", Name: "Web Frontend", Status: "healthy", Uptime: 99.98, ResponseTime: 245, LastIncident: model.MustParseTime("2024-01-15T10:30:00Z"), Environment: "Production"},
		{ID: "SVC-002", Name: "User API", Status: "healthy", Uptime: 99.95, ResponseTime: 189, LastIncident: model.MustParseTime("2024-01-12T14:20:00Z"), Environment: "Production"},
		{ID: "SVC-003", Name: "Payment API", Status: "degraded", Uptime: 98.2, ResponseTime: 1200, LastIncident: now.Add(-2 * time.Hour), Environment: "Production"},
		{ID: "SVC-004", Name: "Database Cluster", Status: "healthy", Uptime: 99.99, ResponseTime: 12, LastIncident: model.MustParseTime("2023-12-28T09:15:00Z"), Environment: "Production"},
		{ID: "SVC-005", Name: "Cache Layer", Status: "warning", Uptime: 99.1, ResponseTime: 8, LastIncident: now.Add(-6 * time.Hour), Environment: "Production"},
	}
}
