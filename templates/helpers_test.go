package templates

import (
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"zero", 0, "$0"},
		{"hundreds", 950, "$950"},
		{"thousands", 2450, "$2,450"},
		{"millions", 1234567, "$1,234,567"},
		{"rounds", 999.6, "$1,000"},
		{"negative", -45000, "-$45,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(tt.input))
		})
	}
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "99.9%", FormatPct(99.94))
	assert.Equal(t, "0.0%", FormatPct(0))
	assert.Equal(t, "100.0%", FormatPct(100))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30s", FormatDuration(30*time.Second))
	assert.Equal(t, "5m 30s", FormatDuration(5*time.Minute+30*time.Second))
	assert.Equal(t, "2h 15m", FormatDuration(2*time.Hour+15*time.Minute))
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "15m", FormatAge(now.Add(-15*time.Minute), now))
	assert.Equal(t, "3h", FormatAge(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d", FormatAge(now.Add(-50*time.Hour), now))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2026, 3, 10, 8, 5, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, "2026-03-10 07:05", FormatTime(ts))
}

func TestSeverityClass(t *testing.T) {
	assert.Equal(t, "status-critical", SeverityClass(model.SeverityCritical))
	assert.Equal(t, "status-warning", SeverityClass(model.SeverityHigh))
	assert.Equal(t, "status-unknown", SeverityClass(model.SeverityMedium))
	assert.Equal(t, "status-ok", SeverityClass(model.SeverityLow))
}

func TestServiceStatusClass(t *testing.T) {
	assert.Equal(t, "status-ok", ServiceStatusClass("healthy"))
	assert.Equal(t, "status-critical", ServiceStatusClass("degraded"))
	assert.Equal(t, "status-warning", ServiceStatusClass("warning"))
}

func TestProgressBarWidth(t *testing.T) {
	assert.Equal(t, 50.0, ProgressBarWidth(50))
	assert.Equal(t, 100.0, ProgressBarWidth(150))
	assert.Equal(t, 0.0, ProgressBarWidth(-10))
}

func TestProgressBarClass(t *testing.T) {
	assert.Equal(t, "bar-ok", ProgressBarClass(50))
	assert.Equal(t, "bar-warning", ProgressBarClass(80))
	assert.Equal(t, "bar-critical", ProgressBarClass(95))
}

func TestOpenAlerts(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	in := []model.Alert{
		{ID: "a", Severity: model.SeverityLow, Status: model.AlertActive, Timestamp: t0},
		{ID: "b", Severity: model.SeverityCritical, Status: model.AlertResolved, Timestamp: t0},
		{ID: "c", Severity: model.SeverityHigh, Status: model.AlertInvestigating, Timestamp: t0},
		{ID: "d", Severity: model.SeverityHigh, Status: model.AlertActive, Timestamp: t0.Add(time.Hour)},
		{ID: "e", Severity: "Unknown", Status: model.AlertActive, Timestamp: t0},
	}

	got := OpenAlerts(in)
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"d", "c", "a", "e"}, ids)
}

func TestCountServicesByStatus(t *testing.T) {
	healthy, other := CountServicesByStatus([]model.Service{
		{Status: "healthy"}, {Status: "degraded"}, {Status: "healthy"}, {Status: "warning"},
	})
	assert.Equal(t, 2, healthy)
	assert.Equal(t, 2, other)
}

func TestServicesHeading(t *testing.T) {
	got := ServicesHeading([]model.Service{{Status: "healthy"}, {Status: "degraded"}})
	assert.Equal(t, "Services (1 healthy, 1 degraded)", got)
}
