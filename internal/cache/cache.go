// Package cache produces the synthetic dashboard metrics.
//
// The dashboard snapshot is cached in the store for a fixed TTL and
// regenerated from a stored baseline with bounded random jitter once it goes
// stale. The performance and cost series are regenerated on every request and
// only archived, never read back.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"
)

// Store keys.
const (
	KeyDashboard  = "metrics:dashboard:current"
	KeyBaseline   = "system:base_metrics"
	prefixHistory = "metrics:historical:"
	prefixPerf    = "performance:"
	prefixCosts   = "finops:costs:"
)

const (
	DefaultTTL    = 60 * time.Second
	DefaultHours  = 24
	MaxHours      = 168
	DefaultPeriod = "6m"

	costMonths    = 6
	businessStart = 9
	businessEnd   = 17
	businessLoad  = 70.0
	offHoursLoad  = 40.0
)

var dashboardReads = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "organizeit_dashboard_cache_total",
	Help: "Dashboard snapshot reads by cache result",
}, []string{"result"})

// DefaultBaseline is used when no baseline has been stored.
var DefaultBaseline = model.BaseMetrics{
	SystemHealth:    98.7,
	MonthlySpend:    285000,
	CarbonFootprint: 42.3,
	ActiveProjects:  24,
	Uptime:          99.87,
	MTTD:            8.2,
	MTTR:            24.5,
	AlertsCount:     3,
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithRand draws jitter from r instead of the global source.
func WithRand(r *rand.Rand) Option {
	return func(c *Cache) {
		var mu sync.Mutex
		c.float = func() float64 {
			mu.Lock()
			defer mu.Unlock()
			return r.Float64()
		}
	}
}

// WithTTL overrides the dashboard snapshot TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLocation sets the time zone used for hour-of-day and calendar months.
func WithLocation(loc *time.Location) Option {
	return func(c *Cache) { c.loc = loc }
}

// Cache generates and caches synthetic metrics on top of a Store.
type Cache struct {
	store store.Store
	ttl   time.Duration
	now   func() time.Time
	float func() float64
	loc   *time.Location
	group singleflight.Group
}

// New returns a Cache reading and writing through s.
func New(s store.Store, opts ...Option) *Cache {
	c := &Cache{
		store: s,
		ttl:   DefaultTTL,
		now:   time.Now,
		float: rand.Float64,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// jitter returns a symmetric random offset in [-width/2, width/2).
func (c *Cache) jitter(width float64) float64 {
	return (c.float() - 0.5) * width
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Dashboard returns the current snapshot, regenerating it when it is absent
// or older than the TTL. Concurrent callers in this process share a single
// regeneration, which runs detached from any one caller's cancellation.
func (c *Cache) Dashboard(ctx context.Context) (model.MetricSnapshot, error) {
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan("dashboard", func() (any, error) {
		return c.dashboard(shared)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return model.MetricSnapshot{}, ctx.Err()
	}
	if res.Err != nil {
		return model.MetricSnapshot{}, res.Err
	}
	return res.Val.(model.MetricSnapshot), nil
}

func (c *Cache) dashboard(ctx context.Context) (model.MetricSnapshot, error) {
	now := c.now()

	data, err := c.store.Get(ctx, KeyDashboard)
	switch {
	case errors.Is(err, store.ErrNotFound):
	case err != nil:
		return model.MetricSnapshot{}, apperr.Store(fmt.Errorf("reading dashboard snapshot: %w", err))
	default:
		cached, err := store.DecodeJSON[model.MetricSnapshot](data)
		if err == nil && now.Sub(cached.Timestamp) <= c.ttl {
			dashboardReads.WithLabelValues("hit").Inc()
			return cached, nil
		}
		if err != nil {
			// An unreadable snapshot is regenerated rather than surfaced.
			slog.Warn("discarding unreadable dashboard snapshot", "error", err)
		}
	}
	dashboardReads.WithLabelValues("miss").Inc()

	base, err := c.Baseline(ctx)
	if err != nil {
		return model.MetricSnapshot{}, err
	}

	snap := c.perturb(base, now)
	if err := store.SetJSON(ctx, c.store, KeyDashboard, snap); err != nil {
		return model.MetricSnapshot{}, apperr.Store(fmt.Errorf("writing dashboard snapshot: %w", err))
	}
	historyKey := fmt.Sprintf("%s%d", prefixHistory, snap.LastUpdated)
	if err := store.SetJSON(ctx, c.store, historyKey, snap); err != nil {
		return model.MetricSnapshot{}, apperr.Store(fmt.Errorf("archiving dashboard snapshot: %w", err))
	}
	return snap, nil
}

// perturb applies independent bounded jitter to each baseline field.
func (c *Cache) perturb(base model.BaseMetrics, now time.Time) model.MetricSnapshot {
	ts := now.UTC().Truncate(time.Millisecond)
	return model.MetricSnapshot{
		SystemHealth:    clamp(base.SystemHealth+c.jitter(0.8), 95, 100),
		MonthlySpend:    base.MonthlySpend + math.Floor(c.jitter(20000)),
		CarbonFootprint: math.Max(30, base.CarbonFootprint+c.jitter(4)),
		ActiveProjects:  base.ActiveProjects + int(math.Floor(c.jitter(4))),
		Uptime:          clamp(base.Uptime+c.jitter(0.3), 99, 100),
		MTTD:            math.Max(5, base.MTTD+c.jitter(2)),
		MTTR:            math.Max(15, base.MTTR+c.jitter(8)),
		AlertsCount:     max(0, base.AlertsCount+int(math.Floor(c.jitter(3)))),
		Timestamp:       ts,
		LastUpdated:     ts.UnixMilli(),
	}
}

// Baseline returns the stored baseline, or DefaultBaseline if none is stored.
func (c *Cache) Baseline(ctx context.Context) (model.BaseMetrics, error) {
	base, err := store.GetJSON[model.BaseMetrics](ctx, c.store, KeyBaseline)
	if errors.Is(err, store.ErrNotFound) {
		return DefaultBaseline, nil
	}
	if err != nil {
		return model.BaseMetrics{}, apperr.Store(fmt.Errorf("reading baseline: %w", err))
	}
	return base, nil
}

// ReseedBaseline replaces the stored baseline. The cached snapshot is left in
// place and picks up the new baseline when it next expires.
func (c *Cache) ReseedBaseline(ctx context.Context, base model.BaseMetrics) error {
	if base.SystemHealth < 95 || base.SystemHealth > 100 {
		return apperr.Invalid(errors.New("system_health must be within [95,100]"))
	}
	if base.Uptime < 99 || base.Uptime > 100 {
		return apperr.Invalid(errors.New("uptime must be within [99,100]"))
	}
	if base.AlertsCount < 0 {
		return apperr.Invalid(errors.New("alerts_count must be >= 0"))
	}
	if err := store.SetJSON(ctx, c.store, KeyBaseline, base); err != nil {
		return apperr.Store(fmt.Errorf("writing baseline: %w", err))
	}
	return nil
}
