package projects

import (
	"context"
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	s := store.NewMemory()
	return New(s, func() time.Time { return fixedNow }), s
}

func ptr[T any](v T) *T { return &v }

func TestList_Seeded(t *testing.T) {
	svc, _ := newTestService(t)

	projects, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "PROJ-001", projects[0].ID)
	assert.Equal(t, model.ProjectInProgress, projects[0].Status)
	assert.Nil(t, projects[0].CreatedAt)
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Create(context.Background(), NewProject{Name: "Data Lake", Budget: 50000})
	require.NoError(t, err)

	assert.Equal(t, "PROJ-004", p.ID)
	assert.Equal(t, model.ProjectPlanning, p.Status)
	assert.Equal(t, 0, p.Progress)
	assert.Equal(t, 0.0, p.Spent)
	require.NotNil(t, p.CreatedAt)
	assert.Equal(t, fixedNow, *p.CreatedAt)
}

func TestCreate_CallerFieldsWin(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.Create(context.Background(), NewProject{
		Name:     "Edge rollout",
		Status:   model.ProjectInProgress,
		Progress: ptr(40),
		Spent:    ptr(1200.0),
		Budget:   1000,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ProjectInProgress, p.Status)
	assert.Equal(t, 40, p.Progress)
	assert.Equal(t, 1200.0, p.Spent, "spent is not checked against budget")
}

func TestCreate_ProgressClamped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		in, want int
	}{
		{-20, 0},
		{0, 0},
		{55, 55},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		p, err := svc.Create(ctx, NewProject{Name: "p", Progress: ptr(tt.in)})
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.Progress, "progress %d", tt.in)
	}
}

func TestCreate_SequentialUniqueIDs(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	seen := map[string]bool{"PROJ-001": true, "PROJ-002": true, "PROJ-003": true}
	for range 5 {
		p, err := svc.Create(ctx, NewProject{Name: "p"})
		require.NoError(t, err)
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
	assert.True(t, seen["PROJ-008"])
}

func TestCreate_Invalid(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   NewProject
	}{
		{"missing name", NewProject{}},
		{"unknown status", NewProject{Name: "p", Status: "Done"}},
		{"negative budget", NewProject{Name: "p", Budget: -1}},
		{"bad date", NewProject{Name: "p", StartDate: "01/02/2026"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		})
	}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		items []model.Project
		want  string
	}{
		{"empty", nil, "PROJ-001"},
		{"gap", []model.Project{{ID: "PROJ-001"}, {ID: "PROJ-007"}}, "PROJ-008"},
		{"foreign ids ignored", []model.Project{{ID: "X-900"}, {ID: "PROJ-002"}}, "PROJ-003"},
		{"wide", []model.Project{{ID: "PROJ-999"}}, "PROJ-1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextID(tt.items))
		})
	}
}
