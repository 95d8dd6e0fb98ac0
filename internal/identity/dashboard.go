package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
)

// UserMetrics are the synthetic per-user productivity figures.
type UserMetrics struct {
	TasksCompleted         int       `json:"tasks_completed"`
	TasksPending           int       `json:"tasks_pending"`
	ProjectsActive         int       `json:"projects_active"`
	EfficiencyScore        int       `json:"efficiency_score"`
	LastActivity           time.Time `json:"last_activity"`
	WeeklyHours            float64   `json:"weekly_hours"`
	AlertsAssigned         int       `json:"alerts_assigned"`
	CostSavingsContributed int64     `json:"cost_savings_contributed"`
}

// Activity is an entry in a user's recent activity feed.
type Activity struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Timestamp  time.Time `json:"timestamp"`
	Impact     string    `json:"impact"`
	Project    string    `json:"project,omitempty"`
	Savings    int64     `json:"savings,omitempty"`
	Compliance string    `json:"compliance,omitempty"`
}

// UserDashboard joins a profile with its metrics and activities.
type UserDashboard struct {
	User             model.UserProfile `json:"user"`
	Metrics          UserMetrics       `json:"metrics"`
	RecentActivities []Activity        `json:"recent_activities"`
	LastUpdated      time.Time         `json:"last_updated"`
}

// Dashboard builds the dashboard of user id and stores a copy under
// user_dashboard:<id>. It returns apperr.ErrNotFound if the user has no
// profile.
func (d *Directory) Dashboard(ctx context.Context, id string) (UserDashboard, error) {
	profile, err := d.Profile(ctx, id)
	if err != nil {
		return UserDashboard{}, err
	}

	now := d.now().UTC()
	dash := UserDashboard{
		User: profile,
		Metrics: UserMetrics{
			TasksCompleted:         47,
			TasksPending:           12,
			ProjectsActive:         3,
			EfficiencyScore:        92,
			LastActivity:           now.Add(-15 * time.Minute),
			WeeklyHours:            38.5,
			AlertsAssigned:         2,
			CostSavingsContributed: 15400,
		},
		RecentActivities: []Activity{
			{
				ID:        "ACT-001",
				Type:      "task_completed",
				Title:     "Resolved database performance issue",
				Timestamp: now.Add(-2 * time.Hour),
				Impact:    "High",
				Project:   "Cloud Migration Phase 2",
			},
			{
				ID:        "ACT-002",
				Type:      "cost_optimization",
				Title:     "Implemented auto-scaling for dev environment",
				Timestamp: now.Add(-6 * time.Hour),
				Impact:    "Medium",
				Savings:   2400,
			},
			{
				ID:         "ACT-003",
				Type:       "security_patch",
				Title:      "Applied security patches to 8 servers",
				Timestamp:  now.Add(-24 * time.Hour),
				Impact:     "High",
				Compliance: "SOC2",
			},
		},
		LastUpdated: now,
	}

	if err := store.SetJSON(ctx, d.store, dashboardPrefix+id, dash); err != nil {
		return UserDashboard{}, apperr.Store(fmt.Errorf("writing user dashboard: %w", err))
	}
	return dash, nil
}
