package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent(kind, severity, status string) model.AlertEvent {
	return model.AlertEvent{
		Kind: kind,
		Alert: model.Alert{
			ID:          "ALT-1700000000000-001",
			Severity:    severity,
			Title:       "Database Connection Pool Exhausted",
			Description: "Primary database connection pool reached 95% capacity",
			Service:     "PostgreSQL Cluster",
			Status:      status,
			Environment: "Production",
		},
		Timestamp: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestNtfyName(t *testing.T) {
	p := NewNtfy("http://localhost", "alerts")
	assert.Equal(t, "ntfy", p.Name())
}

func TestNtfySendCritical(t *testing.T) {
	var gotReq *http.Request
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewNtfy(srv.URL, "test-alerts")
	err := p.Send(context.Background(), testEvent(model.AlertCreated, model.SeverityCritical, model.AlertActive))
	require.NoError(t, err)

	assert.Equal(t, "/test-alerts", gotReq.URL.Path)
	assert.Equal(t, "Database Connection Pool Exhausted", gotReq.Header.Get("Title"))
	assert.Equal(t, "5", gotReq.Header.Get("Priority"))
	assert.Contains(t, gotReq.Header.Get("Tags"), "rotating_light")
	assert.Contains(t, gotReq.Header.Get("Tags"), "created")
	assert.Equal(t, "[PostgreSQL Cluster/Production] Primary database connection pool reached 95% capacity", gotBody)
}

func TestNtfySendResolved(t *testing.T) {
	var gotReq *http.Request
	var gotBody string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ev := testEvent(model.AlertStatusChanged, model.SeverityHigh, model.AlertResolved)
	ev.Alert.Resolution = "Pool size raised"

	p := NewNtfy(srv.URL, "alerts")
	require.NoError(t, p.Send(context.Background(), ev))

	assert.Equal(t, "Resolved: Database Connection Pool Exhausted", gotReq.Header.Get("Title"))
	assert.Equal(t, "4", gotReq.Header.Get("Priority"))
	assert.Contains(t, gotReq.Header.Get("Tags"), "warning")
	assert.Contains(t, gotReq.Header.Get("Tags"), "white_check_mark")
	assert.Contains(t, gotBody, "Resolution: Pool size raised")
}

func TestSeverityToNtfyPriority(t *testing.T) {
	tests := []struct {
		severity string
		want     string
	}{
		{model.SeverityCritical, "5"},
		{model.SeverityHigh, "4"},
		{model.SeverityMedium, "3"},
		{model.SeverityLow, "2"},
		{"", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.severity, func(t *testing.T) {
			assert.Equal(t, tt.want, severityToNtfyPriority(tt.severity))
		})
	}
}

func TestNtfyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewNtfy(srv.URL, "alerts")
	err := p.Send(context.Background(), testEvent(model.AlertCreated, model.SeverityLow, model.AlertActive))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNtfySendCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewNtfy(srv.URL, "alerts")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Send(ctx, testEvent(model.AlertCreated, model.SeverityLow, model.AlertActive))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ntfy: send:")
}

func TestNtfySendBadURL(t *testing.T) {
	p := NewNtfy("://invalid", "alerts")
	err := p.Send(context.Background(), testEvent(model.AlertCreated, model.SeverityLow, model.AlertActive))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ntfy:")
}

func TestNtfyTrailingSlash(t *testing.T) {
	p := NewNtfy("http://example.com/", "alerts")
	assert.Equal(t, "http://example.com", p.url)
}
