// Package warmup touches every seeded resource once at startup so that the
// first user request does not pay for seeding.
package warmup

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Task loads one resource.
type Task struct {
	Name string
	Load func(ctx context.Context) error
}

// Config bounds a warm-up run.
type Config struct {
	Timeout     time.Duration // default 3s
	Concurrency int           // default 4
}

// Report lists which tasks succeeded and which failed or timed out.
type Report struct {
	Loaded []string
	Failed []string
}

// Run executes tasks with bounded concurrency under an overall timeout.
// Failures are logged and recorded in the report, never returned.
func Run(ctx context.Context, cfg Config, tasks ...Task) Report {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 4
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var (
		mu  sync.Mutex
		rep Report
	)
	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)

	start := time.Now()
	for _, t := range tasks {
		g.Go(func() error {
			err := ctx.Err()
			if err == nil {
				err = t.Load(ctx)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("warm-up task failed", "task", t.Name, "error", err)
				rep.Failed = append(rep.Failed, t.Name)
				return nil
			}
			rep.Loaded = append(rep.Loaded, t.Name)
			return nil
		})
	}
	_ = g.Wait()

	slices.Sort(rep.Loaded)
	slices.Sort(rep.Failed)
	slog.Info("warm-up finished",
		"loaded", len(rep.Loaded),
		"failed", len(rep.Failed),
		"duration", time.Since(start),
	)
	return rep
}
