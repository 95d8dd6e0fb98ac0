package services

import (
	"context"
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	s := store.NewMemory()
	r := New(s, func() time.Time { return now })
	ctx := context.Background()

	svcs, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, svcs, 5)

	assert.Equal(t, "Payment API", svcs[2].Name)
	assert.Equal(t, "degraded", svcs[2].Status)
	assert.Equal(t, now.Add(-2*time.Hour), svcs[2].LastIncident)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), svcs[0].LastIncident)

	// A later clock does not move the seeded incident times.
	later := New(s, func() time.Time { return now.Add(24 * time.Hour) })
	again, err := later.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, svcs, again)
}
