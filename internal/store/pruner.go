package store

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// RetentionConfig defines how long to keep timestamp-suffixed archive keys.
type RetentionConfig struct {
	// Prefixes whose keys end in ":<epoch-ms>".
	Prefixes []string
	MaxAge   time.Duration // default 7d
}

// DefaultRetention returns the default retention for the metric archives.
func DefaultRetention() RetentionConfig {
	return RetentionConfig{
		Prefixes: []string{"metrics:historical:", "performance:", "finops:costs:"},
		MaxAge:   7 * 24 * time.Hour,
	}
}

// Pruner periodically removes old archive entries from the store.
type Pruner struct {
	store     Store
	retention RetentionConfig
	interval  time.Duration
	now       func() time.Time
}

// NewPruner creates a pruner with the given retention config.
func NewPruner(store Store, retention RetentionConfig, interval time.Duration) *Pruner {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &Pruner{
		store:     store,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// Run starts the pruner loop. It blocks until the context is cancelled.
func (p *Pruner) Run(ctx context.Context) error {
	slog.Info("pruner started", "interval", p.interval, "max_age", p.retention.MaxAge)

	// Run once at startup
	p.Prune(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("pruner stopped")
			return ctx.Err()
		case <-ticker.C:
			p.Prune(ctx)
		}
	}
}

// Prune deletes archive entries older than the retention window and returns
// how many were removed. Failures are logged per prefix and do not stop the
// remaining prefixes from being pruned.
func (p *Pruner) Prune(ctx context.Context) int {
	cutoff := p.now().Add(-p.retention.MaxAge).UnixMilli()
	total := 0

	for _, prefix := range p.retention.Prefixes {
		entries, err := p.store.List(ctx, prefix)
		if err != nil {
			slog.Error("pruning failed", "prefix", prefix, "error", err)
			continue
		}
		removed := 0
		for _, e := range entries {
			ts, ok := archiveTimestamp(e.Key)
			if !ok || ts >= cutoff {
				continue
			}
			if err := p.store.Delete(ctx, e.Key); err != nil {
				slog.Error("pruning failed", "key", e.Key, "error", err)
				continue
			}
			removed++
		}
		if removed > 0 {
			slog.Info("pruned old data", "prefix", prefix, "keys", removed)
		}
		total += removed
	}
	return total
}

// archiveTimestamp parses the trailing ":<epoch-ms>" segment of key.
func archiveTimestamp(key string) (int64, bool) {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return 0, false
	}
	ts, err := strconv.ParseInt(key[i+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
