// Package projects manages the collaboration board's project list.
package projects

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/collection"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/go-playground/validator/v10"
)

// Key is the store key of the projects collection.
const Key = "projects:current"

const idPrefix = "PROJ-"

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewProject is the caller-supplied part of a project. Nil pointer fields
// take the defaults: Planning, zero progress, zero spent.
type NewProject struct {
	Name        string   `json:"name" validate:"required,max=256"`
	Description string   `json:"description" validate:"max=4096"`
	Status      string   `json:"status" validate:"omitempty,oneof=Planning 'In Progress' Completed Blocked"`
	Priority    string   `json:"priority" validate:"max=32"`
	Progress    *int     `json:"progress"`
	Budget      float64  `json:"budget" validate:"gte=0"`
	Spent       *float64 `json:"spent" validate:"omitempty,gte=0"`
	TeamSize    int      `json:"team_size" validate:"gte=0"`
	StartDate   string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string   `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Lead        string   `json:"lead" validate:"max=256"`
	Category    string   `json:"category" validate:"max=64"`
}

// Validate checks the fields of a new project.
func (n NewProject) Validate() error {
	if err := validate.Struct(n); err != nil {
		return apperr.Invalid(err)
	}
	return nil
}

// Service reads and appends to the projects collection.
type Service struct {
	items *collection.Collection[model.Project]
	now   func() time.Time
}

// New returns a Service over s. now may be nil.
func New(s store.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		items: collection.New(s, Key, seed, collection.WithClock(now)),
		now:   now,
	}
}

// List returns all projects in creation order.
func (s *Service) List(ctx context.Context) ([]model.Project, error) {
	return s.items.Load(ctx)
}

// Create appends a project with the next sequential id.
func (s *Service) Create(ctx context.Context, in NewProject) (model.Project, error) {
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}

	var created model.Project
	_, err := s.items.Mutate(ctx, func(items []model.Project) ([]model.Project, error) {
		now := s.now().UTC()
		created = model.Project{
			ID:          nextID(items),
			Name:        in.Name,
			Description: in.Description,
			Status:      model.ProjectPlanning,
			Priority:    in.Priority,
			Budget:      in.Budget,
			TeamSize:    in.TeamSize,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			Lead:        in.Lead,
			Category:    in.Category,
			CreatedAt:   &now,
		}
		if in.Status != "" {
			created.Status = in.Status
		}
		if in.Progress != nil {
			created.Progress = min(max(*in.Progress, 0), 100)
		}
		if in.Spent != nil {
			created.Spent = *in.Spent
		}
		return append(items, created), nil
	})
	if err != nil {
		return model.Project{}, err
	}
	return created, nil
}

// nextID returns PROJ-NNN one past the largest numeric suffix in items.
// Ids that do not parse are ignored.
func nextID(items []model.Project) string {
	highest := 0
	for _, p := range items {
		n, err := strconv.Atoi(strings.TrimPrefix(p.ID, idPrefix))
		if err == nil && strings.HasPrefix(p.ID, idPrefix) && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", idPrefix, highest+1)
}
