package api

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/alerts"
	"github.com/darshan-rambhia/organizeit/internal/cache"
	"github.com/darshan-rambhia/organizeit/internal/chat"
	"github.com/darshan-rambhia/organizeit/internal/identity"
	"github.com/darshan-rambhia/organizeit/internal/inbox"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/projects"
	"github.com/darshan-rambhia/organizeit/internal/reports"
	"github.com/darshan-rambhia/organizeit/internal/services"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)

// failWriter is a ResponseWriter whose Write always returns an error.
type failWriter struct {
	header http.Header
}

func (fw *failWriter) Header() http.Header       { return fw.header }
func (fw *failWriter) WriteHeader(int)           {}
func (fw *failWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("disk on fire")

func (brokenStore) Get(context.Context, string) ([]byte, error)         { return nil, errBroken }
func (brokenStore) Set(context.Context, string, []byte) error           { return errBroken }
func (brokenStore) Delete(context.Context, string) error                { return errBroken }
func (brokenStore) List(context.Context, string) ([]store.Entry, error) { return nil, errBroken }
func (brokenStore) Close() error                                        { return nil }

func newBackends(t *testing.T, st store.Store) Backends {
	t.Helper()
	now := func() time.Time { return testNow }
	dir := identity.NewDirectory(st, now)
	hash, err := bcrypt.GenerateFromPassword([]byte(identity.DefaultDemoPassword), bcrypt.MinCost)
	require.NoError(t, err)
	auth, err := identity.NewDemoAuth(dir, identity.DemoEmail, string(hash))
	require.NoError(t, err)
	return Backends{
		Metrics: cache.New(st,
			cache.WithClock(now),
			cache.WithRand(rand.New(rand.NewPCG(1, 2))),
			cache.WithLocation(time.UTC),
		),
		Alerts:   alerts.New(st, alerts.WithClock(now), alerts.WithRand(rand.New(rand.NewPCG(3, 4)))),
		Inbox:    inbox.New(st, now),
		Projects: projects.New(st, now),
		Services: services.New(st, now),
		Chat:     chat.NewRouter(st, now),
		Reports:  reports.New(st),
		Identity: dir,
		Auth:     auth,
	}
}

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	st := store.NewMemory()
	srv := NewServer(":0", st, newBackends(t, st))
	srv.now = func() time.Time { return testNow }
	return srv, st
}

func do(t *testing.T, srv *Server, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authed {
		req.Header.Set("Authorization", "Bearer demo-token")
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// --- auth ---

func TestAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	paths := []string{
		"/api/metrics/dashboard",
		"/api/metrics/performance",
		"/api/alerts",
		"/api/notifications",
		"/api/projects",
		"/api/services/health",
		"/api/finops/costs",
		"/api/finops/optimization",
		"/api/esg/carbon",
		"/api/esg/sustainability",
		"/api/ai/insights",
		"/api/optimization/resources",
		"/api/identity/users",
		"/api/audit/events",
		"/api/users/demo-user-id/dashboard",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, p, "", false)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "authorization required")
		})
	}
}

func TestAuthRequired_DoesNotTouchStore(t *testing.T) {
	srv, st := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/api/alerts", `{"severity":"High","title":"x"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	_, err := st.Get(context.Background(), alerts.Key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAuthRequired_AnyHeaderValueAccepted(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/services/health", nil)
	req.Header.Set("Authorization", "anything")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// --- metrics ---

func TestHandleDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/metrics/dashboard", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	snap := decode[model.MetricSnapshot](t, w)
	assert.GreaterOrEqual(t, snap.SystemHealth, 95.0)
	assert.LessOrEqual(t, snap.SystemHealth, 100.0)
	assert.Equal(t, testNow.UnixMilli(), snap.LastUpdated)

	again := decode[model.MetricSnapshot](t, do(t, srv, http.MethodGet, "/api/metrics/dashboard", "", true))
	assert.Equal(t, snap, again)
}

func TestHandleReseedBaseline(t *testing.T) {
	srv, _ := newTestServer(t)
	body := `{"system_health":97,"monthly_spend":50000,"carbon_footprint":2.1,"active_projects":5,"uptime":99.5,"mttd":3,"mttr":10,"alerts_count":2}`
	w := do(t, srv, http.MethodPut, "/api/metrics/baseline", body, true)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodPut, "/api/metrics/baseline", `{"system_health":50,"uptime":99.5}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "system_health")
}

func TestHandlePerformance(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/metrics/performance?hours=2", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[performanceResponse](t, w)
	assert.Equal(t, 2, resp.Hours)
	require.Len(t, resp.Data, 3)
	for _, p := range resp.Data {
		assert.GreaterOrEqual(t, p.CPU, 20.0)
		assert.LessOrEqual(t, p.CPU, 95.0)
	}
}

func TestHandlePerformance_Defaults(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := decode[performanceResponse](t, do(t, srv, http.MethodGet, "/api/metrics/performance", "", true))
	assert.Equal(t, 24, resp.Hours)
	assert.Len(t, resp.Data, 25)
}

func TestHandlePerformance_Clamped(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := decode[performanceResponse](t, do(t, srv, http.MethodGet, "/api/metrics/performance?hours=1000", "", true))
	assert.Equal(t, cache.MaxHours, resp.Hours)
	assert.Len(t, resp.Data, cache.MaxHours+1)
}

func TestHandlePerformance_BadHours(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/metrics/performance?hours=abc", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "hours must be an integer")
}

// --- alerts ---

func TestHandleAlerts_ListSeeds(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/api/alerts", "", true)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Alerts []model.Alert `json:"alerts"`
		Count  int           `json:"count"`
	}](t, w)
	assert.Equal(t, 3, resp.Count)
	assert.Len(t, resp.Alerts, 3)
}

func TestHandleAlerts_CreateAndUpdate(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/alerts",
		`{"severity":"Critical","title":"Database down","service":"db","environment":"production"}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Alert   model.Alert `json:"alert"`
		Message string      `json:"message"`
	}](t, w)
	assert.Equal(t, model.AlertActive, created.Alert.Status)
	assert.Equal(t, "Alert created successfully", created.Message)
	id := created.Alert.ID

	w = do(t, srv, http.MethodPut, "/api/alerts/"+id+"/status", `{"status":"Resolved","resolution":"restarted"}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[struct {
		Alert model.Alert `json:"alert"`
	}](t, w)
	assert.Equal(t, model.AlertResolved, updated.Alert.Status)
	assert.Equal(t, "restarted", updated.Alert.Resolution)
	require.NotNil(t, updated.Alert.UpdatedAt)

	list := decode[struct {
		Count int `json:"count"`
	}](t, do(t, srv, http.MethodGet, "/api/alerts", "", true))
	assert.Equal(t, 4, list.Count)
}

func TestHandleAlerts_CreateInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{"severity":`},
		{"missing title", `{"severity":"High"}`},
		{"bad severity", `{"severity":"Apocalyptic","title":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, "/api/alerts", tt.body, true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestHandleAlerts_UpdateUnknown(t *testing.T) {
	srv, _ := newTestServer(t)
	before := do(t, srv, http.MethodGet, "/api/alerts", "", true).Body.String()

	w := do(t, srv, http.MethodPut, "/api/alerts/ALT-0-000/status", `{"status":"Resolved"}`, true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	after := do(t, srv, http.MethodGet, "/api/alerts", "", true).Body.String()
	assert.JSONEq(t, before, after)
}

func TestHandleAlerts_UpdateBadStatus(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodPut, "/api/alerts/whatever/status", `{"status":"Closed"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- notifications ---

func TestHandleNotifications(t *testing.T) {
	srv, _ := newTestServer(t)

	sum := decode[inbox.Summary](t, do(t, srv, http.MethodGet, "/api/notifications", "", true))
	assert.Equal(t, 6, sum.TotalCount)
	unread := sum.UnreadCount

	w := do(t, srv, http.MethodPut, "/api/notifications/NOT-001/read", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[struct {
		Notification model.Notification `json:"notification"`
	}](t, w)
	assert.True(t, resp.Notification.Read)

	sum = decode[inbox.Summary](t, do(t, srv, http.MethodGet, "/api/notifications", "", true))
	assert.LessOrEqual(t, sum.UnreadCount, unread)

	w = do(t, srv, http.MethodPut, "/api/notifications/NOT-999/read", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- projects and services ---

func TestHandleProjects(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/projects", `{"name":"Edge rollout","progress":150,"budget":1000}`, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[struct {
		Project model.Project `json:"project"`
	}](t, w)
	assert.Equal(t, 100, created.Project.Progress)
	assert.Equal(t, model.ProjectPlanning, created.Project.Status)

	list := decode[struct {
		Projects []model.Project `json:"projects"`
		Count    int             `json:"count"`
	}](t, do(t, srv, http.MethodGet, "/api/projects", "", true))
	assert.Equal(t, 4, list.Count)

	w = do(t, srv, http.MethodPost, "/api/projects", `{"description":"no name"}`, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleServiceHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := decode[struct {
		Services []model.Service `json:"services"`
		Count    int             `json:"count"`
	}](t, do(t, srv, http.MethodGet, "/api/services/health", "", true))
	assert.Equal(t, 5, resp.Count)
}

// --- chat ---

func TestHandleChatMessage(t *testing.T) {
	srv, st := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/chat/message",
		`{"userId":"u1","message":"How can I save money?","context":"dashboard"}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[chat.Response](t, w)
	assert.Equal(t, chat.IntentCost, resp.Intent)
	assert.Len(t, resp.Suggestions, 4)

	entries, err := st.List(context.Background(), "chat:u1:")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	hist := decode[struct {
		Messages []model.ChatRecord `json:"messages"`
		Count    int                `json:"count"`
	}](t, do(t, srv, http.MethodGet, "/api/chat/u1/history", "", false))
	require.Equal(t, 2, hist.Count)
	assert.Equal(t, "user", hist.Messages[0].Type)
	assert.Equal(t, "bot", hist.Messages[1].Type)
}

func TestHandleChatMessage_Invalid(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodPost, "/api/chat/message", `{"userId":"","message":"hi"}`, false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, srv, http.MethodGet, "/api/chat/u1/history?limit=x", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- reports ---

func TestHandleReports(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, p := range []string{
		"/api/esg/carbon",
		"/api/esg/sustainability",
		"/api/ai/insights",
		"/api/optimization/resources",
	} {
		t.Run(p, func(t *testing.T) {
			w := do(t, srv, http.MethodGet, p, "", true)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, json.Valid(w.Body.Bytes()))
		})
	}
}

func TestHandleCostOptimization(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := decode[reports.CostOptimization](t, do(t, srv, http.MethodGet, "/api/finops/optimization", "", true))
	var sum int64
	for _, o := range resp.Opportunities {
		sum += o.PotentialSavings
	}
	assert.Equal(t, sum, resp.TotalSavings)
}

func TestHandleCosts(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := decode[costsResponse](t, do(t, srv, http.MethodGet, "/api/finops/costs", "", true))
	assert.Equal(t, cache.DefaultPeriod, resp.Period)
	assert.Len(t, resp.Data, 6)

	resp = decode[costsResponse](t, do(t, srv, http.MethodGet, "/api/finops/costs?period=12m", "", true))
	assert.Equal(t, "12m", resp.Period)

	w := do(t, srv, http.MethodGet, "/api/finops/costs?period=bad:key", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- identity ---

func TestHandleIdentity(t *testing.T) {
	srv, _ := newTestServer(t)

	users := decode[identity.UserList](t, do(t, srv, http.MethodGet, "/api/identity/users", "", true))
	assert.Equal(t, 3, users.Total)

	page := decode[identity.AuditPage](t, do(t, srv, http.MethodGet, "/api/audit/events?limit=2", "", true))
	assert.Len(t, page.Events, 2)
	assert.Equal(t, 2, page.Limit)
}

func TestHandleSignInAndDashboard(t *testing.T) {
	srv, _ := newTestServer(t)

	w := do(t, srv, http.MethodGet, "/api/users/"+identity.DemoUserID+"/dashboard", "", true)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, srv, http.MethodPost, "/api/auth/signin", `{"email":"demo@organizeit.com","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, srv, http.MethodPost, "/api/auth/signin", `{"email":"demo@organizeit.com","password":"demo123"}`, false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[signInResponse](t, w)
	assert.Equal(t, "demo-token", resp.Session.AccessToken)
	assert.Equal(t, identity.DemoUserID, resp.User.ID)
	assert.Equal(t, "Demo login successful", resp.Message)

	w = do(t, srv, http.MethodGet, "/api/users/"+identity.DemoUserID+"/dashboard", "", true)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[identity.UserDashboard](t, w)
	assert.Equal(t, identity.DemoUserID, dash.User.ID)
}

// --- store failures ---

func TestStoreFailureIsGeneric500(t *testing.T) {
	srv := NewServer(":0", brokenStore{}, newBackends(t, brokenStore{}))

	w := do(t, srv, http.MethodGet, "/api/alerts", "", true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch alerts"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "disk on fire")

	w = do(t, srv, http.MethodGet, "/healthz", "", false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

// --- ops surface ---

func TestHandleOverview(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Open alerts (3)")
}

func TestHandleOverview_UnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/nonexistent", "", false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/healthz", "", false)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, testNow.Unix(), body["timestamp"])
}

func TestHandleMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	do(t, srv, http.MethodGet, "/api/metrics/dashboard", "", true)

	w := do(t, srv, http.MethodGet, "/metrics", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "organizeit_http_requests_total")
	assert.Contains(t, w.Body.String(), "organizeit_dashboard_cache_total")
}

func TestSwaggerDocServed(t *testing.T) {
	srv, _ := newTestServer(t)
	w := do(t, srv, http.MethodGet, "/swagger/doc.json", "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/alerts")
}

// --- helpers ---

func TestWriteJSON_MarshalError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	w := httptest.NewRecorder()
	writeJSON(w, req, http.StatusOK, map[string]any{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestWriteJSON_ClientGone(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	fw := &failWriter{header: http.Header{}}
	writeJSON(fw, req, http.StatusOK, map[string]string{"ok": "yes"})
	assert.Equal(t, "application/json", fw.header.Get("Content-Type"))
}

func TestDecodeJSON_TooLarge(t *testing.T) {
	body := `{"userId":"u1","message":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
	w := httptest.NewRecorder()
	var msg chat.Message
	err := decodeJSON(req, w, &msg)
	require.Error(t, err)
}
