// Package reports serves the fixed FinOps, ESG, AI insight and resource
// optimisation payloads. Each read writes the payload to its store key
// before returning it.
package reports

import (
	"context"
	"fmt"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// Store keys.
const (
	KeyCarbon               = "esg:carbon:current"
	KeySustainability       = "esg:sustainability:current"
	KeyInsights             = "ai:insights:current"
	KeyResourceOptimization = "optimization:resources:current"
	KeyCostOptimization     = "finops:optimization:current"
)

// CostOptimization lists FinOps savings opportunities.
type CostOptimization struct {
	Opportunities []model.CostOpportunity `json:"opportunities"`
	TotalSavings  int64                   `json:"total_savings"`
}

// Reports publishes the fixed payloads.
type Reports struct {
	store store.Store
}

// New returns Reports writing to s.
func New(s store.Store) *Reports {
	return &Reports{store: s}
}

func publish[T any](ctx context.Context, s store.Store, key string, v T) (T, error) {
	if err := store.SetJSON(ctx, s, key, v); err != nil {
		var zero T
		return zero, apperr.Store(fmt.Errorf("writing %s: %w", key, err))
	}
	return v, nil
}

// Carbon returns the carbon footprint report.
func (r *Reports) Carbon(ctx context.Context) (model.CarbonReport, error) {
	return publish(ctx, r.store, KeyCarbon, carbonReport())
}

// Sustainability returns the sustainability report.
func (r *Reports) Sustainability(ctx context.Context) (model.SustainabilityReport, error) {
	return publish(ctx, r.store, KeySustainability, sustainabilityReport())
}

// Insights returns the AI insights summary.
func (r *Reports) Insights(ctx context.Context) (model.AIInsights, error) {
	return publish(ctx, r.store, KeyInsights, aiInsights())
}

// ResourceOptimization returns the right-sizing summary.
func (r *Reports) ResourceOptimization(ctx context.Context) (model.ResourceOptimization, error) {
	return publish(ctx, r.store, KeyResourceOptimization, resourceOptimization())
}

// CostOptimization returns the FinOps opportunities and their total savings.
// Only the opportunity list is stored.
func (r *Reports) CostOptimization(ctx context.Context) (CostOptimization, error) {
	opps, err := publish(ctx, r.store, KeyCostOptimization, costOpportunities())
	if err != nil {
		return CostOptimization{}, err
	}
	var total int64
	for _, o := range opps {
		total += o.PotentialSavings
	}
	return CostOptimization{Opportunities: opps, TotalSavings: total}, nil
}
