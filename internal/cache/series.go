package cache

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Performance generates hours+1 hourly buckets ending at now. hours outside
// [0, MaxHours] is clamped. The series is archived but never cached.
func (c *Cache) Performance(ctx context.Context, hours int) ([]model.PerformancePoint, error) {
	hours = min(max(hours, 0), MaxHours)
	now := c.now()

	points := make([]model.PerformancePoint, 0, hours+1)
	for i := hours; i >= 0; i-- {
		ts := now.Add(-time.Duration(i) * time.Hour).In(c.loc)
		hour := ts.Hour()

		base := offHoursLoad
		if hour >= businessStart && hour <= businessEnd {
			base = businessLoad
		}

		points = append(points, model.PerformancePoint{
			Timestamp: ts.UTC().Truncate(time.Millisecond),
			Time:      fmt.Sprintf("%02d:00", hour),
			CPU:       clamp(base+c.jitter(30), 20, 95),
			Memory:    clamp(base+c.jitter(25), 30, 90),
			Disk:      clamp(base*0.6+c.jitter(20), 10, 80),
			Network:   clamp(base*0.4+c.jitter(15), 5, 70),
		})
	}

	key := fmt.Sprintf("%s%dh:%d", prefixPerf, hours, now.UnixMilli())
	if err := store.SetJSON(ctx, c.store, key, points); err != nil {
		return nil, apperr.Store(fmt.Errorf("archiving performance series: %w", err))
	}
	return points, nil
}

// providerBase is a per-provider monthly cost baseline growing linearly.
type providerBase struct {
	start, step, noise float64
}

var (
	awsBase   = providerBase{start: 125000, step: 2000, noise: 10000}
	azureBase = providerBase{start: 87000, step: 1500, noise: 8000}
	gcpBase   = providerBase{start: 45000, step: 1000, noise: 5000}
)

func (p providerBase) at(k int) float64 { return p.start + float64(k)*p.step }

// Costs generates six calendar months of multi-cloud cost ending with the
// current month. Each provider's value is its baseline plus noise, while
// Total sums the baselines only. period becomes part of the archive key and
// must be a short alphanumeric token.
func (c *Cache) Costs(ctx context.Context, period string) ([]model.CostPoint, error) {
	if period == "" {
		period = DefaultPeriod
	}
	if err := validate.Var(period, "alphanum,max=8"); err != nil {
		return nil, apperr.Invalid(fmt.Errorf("period %q: %w", period, err))
	}
	now := c.now().In(c.loc)

	points := make([]model.CostPoint, 0, costMonths)
	for i := costMonths - 1; i >= 0; i-- {
		date := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, c.loc)
		k := costMonths - 1 - i

		aws, azure, gcp := awsBase.at(k), azureBase.at(k), gcpBase.at(k)
		points = append(points, model.CostPoint{
			Month: date.Format("Jan"),
			Date:  date.UTC(),
			AWS:   int64(aws + math.Floor(c.jitter(awsBase.noise))),
			Azure: int64(azure + math.Floor(c.jitter(azureBase.noise))),
			GCP:   int64(gcp + math.Floor(c.jitter(gcpBase.noise))),
			Total: int64(aws + azure + gcp),
		})
	}

	key := fmt.Sprintf("%s%s:%d", prefixCosts, period, now.UnixMilli())
	if err := store.SetJSON(ctx, c.store, key, points); err != nil {
		return nil, apperr.Store(fmt.Errorf("archiving cost series: %w", err))
	}
	return points, nil
}
