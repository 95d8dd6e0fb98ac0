// Package notify delivers alert events to external channels.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Provider sends alert events through a specific channel.
type Provider interface {
	Name() string
	Send(ctx context.Context, ev model.AlertEvent) error
}

var deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "organizeit_notifications_total",
	Help: "Alert event deliveries by provider and result",
}, []string{"provider", "result"})

// Dispatcher fans an event out to every provider. Delivery is best-effort:
// failures are logged and counted, never returned.
type Dispatcher struct {
	providers []Provider
}

// NewDispatcher returns a Dispatcher over providers. A nil or empty list is
// valid and makes Notify a no-op.
func NewDispatcher(providers ...Provider) *Dispatcher {
	return &Dispatcher{providers: providers}
}

// Len reports the number of configured providers.
func (d *Dispatcher) Len() int { return len(d.providers) }

// Notify sends ev to all providers concurrently and waits for them to finish.
func (d *Dispatcher) Notify(ctx context.Context, ev model.AlertEvent) {
	var wg sync.WaitGroup
	for _, p := range d.providers {
		wg.Go(func() {
			if err := p.Send(ctx, ev); err != nil {
				deliveries.WithLabelValues(p.Name(), "error").Inc()
				slog.Error("sending notification", "provider", p.Name(), "alert", ev.Alert.ID, "kind", ev.Kind, "error", err)
				return
			}
			deliveries.WithLabelValues(p.Name(), "ok").Inc()
		})
	}
	wg.Wait()
}
