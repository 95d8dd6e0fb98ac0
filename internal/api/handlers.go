// Package api provides the HTTP surface of OrganizeIT.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/darshan-rambhia/organizeit/internal/alerts"
	"github.com/darshan-rambhia/organizeit/internal/apperr"
	"github.com/darshan-rambhia/organizeit/internal/cache"
	"github.com/darshan-rambhia/organizeit/internal/chat"
	"github.com/darshan-rambhia/organizeit/internal/identity"
	"github.com/darshan-rambhia/organizeit/internal/inbox"
	"github.com/darshan-rambhia/organizeit/internal/model"
	"github.com/darshan-rambhia/organizeit/internal/projects"
	"github.com/darshan-rambhia/organizeit/internal/reports"
	"github.com/darshan-rambhia/organizeit/internal/services"
	"github.com/darshan-rambhia/organizeit/internal/store"
	"github.com/darshan-rambhia/organizeit/templates"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/darshan-rambhia/organizeit/docs/swagger"
)

const maxBodyBytes = 1 << 20

// Backends are the domain components the server routes to.
type Backends struct {
	Metrics  *cache.Cache
	Alerts   *alerts.Service
	Inbox    *inbox.Inbox
	Projects *projects.Service
	Services *services.Registry
	Chat     *chat.Router
	Reports  *reports.Reports
	Identity *identity.Directory
	Auth     *identity.DemoAuth
}

// Server is the HTTP server for OrganizeIT.
type Server struct {
	Backends
	store  store.Store
	now    func() time.Time
	mux    *http.ServeMux
	server *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(addr string, st store.Store, b Backends) *Server {
	srv := &Server{
		Backends: b,
		store:    st,
		now:      time.Now,
		mux:      http.NewServeMux(),
	}

	srv.registerRoutes()

	srv.server = &http.Server{
		Addr:         addr,
		Handler:      SecurityHeadersMiddleware(RecoveryMiddleware(LoggingMiddleware(srv.mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler { return s.server.Handler }

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("HTTP server starting", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		slog.Info("HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleOverview)

	// Metrics
	s.mux.HandleFunc("GET /api/metrics/dashboard", requireAuth(s.handleDashboard))
	s.mux.HandleFunc("PUT /api/metrics/baseline", requireAuth(s.handleReseedBaseline))
	s.mux.HandleFunc("GET /api/metrics/performance", requireAuth(s.handlePerformance))

	// Incidents
	s.mux.HandleFunc("GET /api/alerts", requireAuth(s.handleListAlerts))
	s.mux.HandleFunc("POST /api/alerts", requireAuth(s.handleCreateAlert))
	s.mux.HandleFunc("PUT /api/alerts/{id}/status", requireAuth(s.handleUpdateAlertStatus))

	// Inbox
	s.mux.HandleFunc("GET /api/notifications", requireAuth(s.handleListNotifications))
	s.mux.HandleFunc("PUT /api/notifications/{id}/read", requireAuth(s.handleMarkRead))

	// Collaboration
	s.mux.HandleFunc("GET /api/projects", requireAuth(s.handleListProjects))
	s.mux.HandleFunc("POST /api/projects", requireAuth(s.handleCreateProject))
	s.mux.HandleFunc("GET /api/services/health", requireAuth(s.handleServiceHealth))

	// Chat (unauthenticated)
	s.mux.HandleFunc("POST /api/chat/message", s.handleChatMessage)
	s.mux.HandleFunc("GET /api/chat/{userId}/history", s.handleChatHistory)

	// FinOps, ESG and insights
	s.mux.HandleFunc("GET /api/finops/costs", requireAuth(s.handleCosts))
	s.mux.HandleFunc("GET /api/finops/optimization", requireAuth(s.handleCostOptimization))
	s.mux.HandleFunc("GET /api/esg/carbon", requireAuth(s.handleCarbon))
	s.mux.HandleFunc("GET /api/esg/sustainability", requireAuth(s.handleSustainability))
	s.mux.HandleFunc("GET /api/ai/insights", requireAuth(s.handleInsights))
	s.mux.HandleFunc("GET /api/optimization/resources", requireAuth(s.handleResourceOptimization))

	// Identity
	s.mux.HandleFunc("GET /api/identity/users", requireAuth(s.handleUsers))
	s.mux.HandleFunc("GET /api/audit/events", requireAuth(s.handleAuditEvents))
	s.mux.HandleFunc("GET /api/users/{userId}/dashboard", requireAuth(s.handleUserDashboard))
	s.mux.HandleFunc("POST /api/auth/signin", s.handleSignIn)

	// Ops
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())
	s.mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

// renderHTML renders a templ component to a buffer first, then writes the
// buffer to the response. This ensures rendering errors can be returned as a
// proper 500 before any bytes reach the client.
func renderHTML(w http.ResponseWriter, r *http.Request, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		slog.Error("rendering component", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing HTML response", "path", r.URL.Path, "error", err)
	}
}

// writeJSON marshals v to JSON into a buffer first, then writes it to the
// response. This ensures marshalling errors can be returned as a proper 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("encoding JSON response", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Debug("writing JSON response", "path", r.URL.Path, "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps err onto a status code. Store failures and anything
// unclassified become a 500 carrying only the generic message; the cause is
// logged.
func writeError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	var status int
	msg := err.Error()
	switch {
	case errors.Is(err, apperr.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		msg = generic
		slog.Error(generic, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, r, status, errorBody{Error: msg})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(r *http.Request, w http.ResponseWriter, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid(fmt.Errorf("decoding request body: %w", err))
	}
	return nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Invalid(fmt.Errorf("%s must be an integer", name))
	}
	return v, nil
}

// @Summary Overview page
// @Description Server-rendered operations overview
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := s.Metrics.Dashboard(ctx)
	if err != nil {
		slog.Error("loading overview metrics", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	list, err := s.Alerts.List(ctx)
	if err != nil {
		slog.Error("loading overview alerts", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	svcs, err := s.Services.List(ctx)
	if err != nil {
		slog.Error("loading overview services", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderHTML(w, r, templates.Overview(templates.OverviewData{
		Metrics:  snap,
		Alerts:   list,
		Services: svcs,
		Now:      s.now(),
	}))
}

// @Summary Dashboard metric snapshot
// @Produce json
// @Success 200 {object} model.MetricSnapshot
// @Router /api/metrics/dashboard [get]
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Metrics.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch metrics")
		return
	}
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleReseedBaseline(w http.ResponseWriter, r *http.Request) {
	var base model.BaseMetrics
	if err := decodeJSON(r, w, &base); err != nil {
		writeError(w, r, err, "Failed to update baseline")
		return
	}
	if err := s.Metrics.ReseedBaseline(r.Context(), base); err != nil {
		writeError(w, r, err, "Failed to update baseline")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"baseline": base, "message": "Baseline updated successfully"})
}

type performanceResponse struct {
	Data  []model.PerformancePoint `json:"data"`
	Hours int                      `json:"hours"`
}

// @Summary Hourly performance series
// @Produce json
// @Param hours query int false "Hours of history (0-168)" default(24)
// @Success 200 {object} performanceResponse
// @Router /api/metrics/performance [get]
func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	hours, err := queryInt(r, "hours", cache.DefaultHours)
	if err != nil {
		writeError(w, r, err, "Failed to fetch performance metrics")
		return
	}
	hours = min(max(hours, 0), cache.MaxHours)
	points, err := s.Metrics.Performance(r.Context(), hours)
	if err != nil {
		writeError(w, r, err, "Failed to fetch performance metrics")
		return
	}
	writeJSON(w, r, http.StatusOK, performanceResponse{Data: points, Hours: hours})
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	list, err := s.Alerts.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch alerts")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"alerts": list, "count": len(list)})
}

// @Summary Create an alert
// @Accept json
// @Produce json
// @Success 201 {object} model.Alert
// @Failure 400 {object} errorBody
// @Router /api/alerts [post]
func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var in alerts.NewAlert
	if err := decodeJSON(r, w, &in); err != nil {
		writeError(w, r, err, "Failed to create alert")
		return
	}
	a, err := s.Alerts.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create alert")
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"alert": a, "message": "Alert created successfully"})
}

// @Summary Update alert status
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} model.Alert
// @Failure 404 {object} errorBody
// @Router /api/alerts/{id}/status [put]
func (s *Server) handleUpdateAlertStatus(w http.ResponseWriter, r *http.Request) {
	var upd alerts.StatusUpdate
	if err := decodeJSON(r, w, &upd); err != nil {
		writeError(w, r, err, "Failed to update alert")
		return
	}
	a, err := s.Alerts.UpdateStatus(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeError(w, r, err, "Failed to update alert")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"alert": a, "message": "Alert updated successfully"})
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Inbox.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch notifications")
		return
	}
	writeJSON(w, r, http.StatusOK, sum)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.Inbox.MarkRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err, "Failed to mark notification as read")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"notification": n, "message": "Notification marked as read"})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.Projects.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch projects")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"projects": list, "count": len(list)})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var in projects.NewProject
	if err := decodeJSON(r, w, &in); err != nil {
		writeError(w, r, err, "Failed to create project")
		return
	}
	p, err := s.Projects.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create project")
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"project": p, "message": "Project created successfully"})
}

func (s *Server) handleServiceHealth(w http.ResponseWriter, r *http.Request) {
	list, err := s.Services.List(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch service health")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"services": list, "count": len(list)})
}

// @Summary Send a chat message
// @Accept json
// @Produce json
// @Success 200 {object} chat.Response
// @Failure 400 {object} errorBody
// @Router /api/chat/message [post]
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var msg chat.Message
	if err := decodeJSON(r, w, &msg); err != nil {
		writeError(w, r, err, "Failed to process chat message")
		return
	}
	resp, err := s.Chat.Handle(r.Context(), msg)
	if err != nil {
		writeError(w, r, err, "Failed to process chat message")
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", chat.DefaultHistoryLimit)
	if err != nil {
		writeError(w, r, err, "Failed to fetch chat history")
		return
	}
	userID := r.PathValue("userId")
	records, err := s.Chat.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err, "Failed to fetch chat history")
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"user_id": userID, "messages": records, "count": len(records)})
}

type costsResponse struct {
	Data   []model.CostPoint `json:"data"`
	Period string            `json:"period"`
}

// @Summary Multi-cloud cost series
// @Produce json
// @Param period query string false "Period label" default(6m)
// @Success 200 {object} costsResponse
// @Router /api/finops/costs [get]
func (s *Server) handleCosts(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = cache.DefaultPeriod
	}
	points, err := s.Metrics.Costs(r.Context(), period)
	if err != nil {
		writeError(w, r, err, "Failed to fetch cost data")
		return
	}
	writeJSON(w, r, http.StatusOK, costsResponse{Data: points, Period: period})
}

func (s *Server) handleCostOptimization(w http.ResponseWriter, r *http.Request) {
	v, err := s.Reports.CostOptimization(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch optimization data")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleCarbon(w http.ResponseWriter, r *http.Request) {
	v, err := s.Reports.Carbon(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch carbon data")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleSustainability(w http.ResponseWriter, r *http.Request) {
	v, err := s.Reports.Sustainability(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch sustainability data")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	v, err := s.Reports.Insights(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch AI insights")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleResourceOptimization(w http.ResponseWriter, r *http.Request) {
	v, err := s.Reports.ResourceOptimization(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch optimization data")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	v, err := s.Identity.Users(r.Context())
	if err != nil {
		writeError(w, r, err, "Failed to fetch users")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

// @Summary Audit trail
// @Produce json
// @Param limit query int false "Maximum events" default(50)
// @Success 200 {object} identity.AuditPage
// @Router /api/audit/events [get]
func (s *Server) handleAuditEvents(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", identity.DefaultAuditLimit)
	if err != nil {
		writeError(w, r, err, "Failed to fetch audit events")
		return
	}
	v, err := s.Identity.AuditEvents(r.Context(), limit)
	if err != nil {
		writeError(w, r, err, "Failed to fetch audit events")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	v, err := s.Identity.Dashboard(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, r, err, "Failed to fetch user dashboard data")
		return
	}
	writeJSON(w, r, http.StatusOK, v)
}

type signInResponse struct {
	identity.SignInResult
	Message string `json:"message"`
}

// @Summary Demo sign-in
// @Accept json
// @Produce json
// @Success 200 {object} signInResponse
// @Failure 401 {object} errorBody
// @Router /api/auth/signin [post]
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var c identity.Credentials
	if err := decodeJSON(r, w, &c); err != nil {
		writeError(w, r, err, "Internal server error during sign in")
		return
	}
	res, err := s.Auth.SignIn(r.Context(), c)
	if err != nil {
		writeError(w, r, err, "Internal server error during sign in")
		return
	}
	writeJSON(w, r, http.StatusOK, signInResponse{SignInResult: res, Message: "Demo login successful"})
}

// @Summary Health check
// @Description Reports whether the store answers reads
// @Produce json
// @Success 200 {object} map[string]interface{} "Health status"
// @Failure 503 {object} map[string]interface{} "Store unavailable"
// @Router /healthz [get]
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if _, err := s.store.Get(ctx, cache.KeyBaseline); err != nil && !errors.Is(err, store.ErrNotFound) {
		slog.Warn("health check store read failed", "error", err)
		status, code = "store_unavailable", http.StatusServiceUnavailable
	}
	writeJSON(w, r, code, map[string]any{
		"status":    status,
		"timestamp": s.now().Unix(),
	})
}
