// Package model defines all shared domain types for OrganizeIT.
package model

import "time"

// MustParseTime parses an RFC 3339 literal and panics if it is malformed. It
// is meant for fixed seed data only.
func MustParseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// Alert severities.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// Alert statuses. Any status may move to any other.
const (
	AlertActive        = "Active"
	AlertInvestigating = "Investigating"
	AlertAcknowledged  = "Acknowledged"
	AlertResolved      = "Resolved"
)

// Project statuses.
const (
	ProjectPlanning   = "Planning"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectBlocked    = "Blocked"
)

// Audit event outcomes.
const (
	AuditSuccess = "success"
	AuditBlocked = "blocked"
	AuditFailed  = "failed"
)

// MetricSnapshot is the current value of the dashboard metric set.
type MetricSnapshot struct {
	SystemHealth    float64   `json:"system_health"`
	MonthlySpend    float64   `json:"monthly_spend"`
	CarbonFootprint float64   `json:"carbon_footprint"`
	ActiveProjects  int       `json:"active_projects"`
	Uptime          float64   `json:"uptime"`
	MTTD            float64   `json:"mttd"`
	MTTR            float64   `json:"mttr"`
	AlertsCount     int       `json:"alerts_count"`
	Timestamp       time.Time `json:"timestamp"`
	LastUpdated     int64     `json:"last_updated"` // epoch ms
}

// BaseMetrics is the baseline a dashboard snapshot is perturbed from.
type BaseMetrics struct {
	SystemHealth    float64 `json:"system_health"`
	MonthlySpend    float64 `json:"monthly_spend"`
	CarbonFootprint float64 `json:"carbon_footprint"`
	ActiveProjects  int     `json:"active_projects"`
	Uptime          float64 `json:"uptime"`
	MTTD            float64 `json:"mttd"`
	MTTR            float64 `json:"mttr"`
	AlertsCount     int     `json:"alerts_count"`
}

// PerformancePoint is one hourly bucket of the synthetic performance series.
type PerformancePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Time      string    `json:"time"` // "HH:00"
	CPU       float64   `json:"cpu"`
	Memory    float64   `json:"memory"`
	Disk      float64   `json:"disk"`
	Network   float64   `json:"network"`
}

// CostPoint is one month of the synthetic multi-cloud cost series.
type CostPoint struct {
	Month string    `json:"month"`
	Date  time.Time `json:"date"`
	AWS   int64     `json:"aws"`
	Azure int64     `json:"azure"`
	GCP   int64     `json:"gcp"`
	Total int64     `json:"total"`
}

// Alert is an operational incident tracked on the incidents board.
type Alert struct {
	ID          string     `json:"id"`
	Severity    string     `json:"severity"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Service     string     `json:"service"`
	Status      string     `json:"status"`
	Timestamp   time.Time  `json:"timestamp"`
	Impact      string     `json:"impact,omitempty"`
	Assignee    string     `json:"assignee"`
	Environment string     `json:"environment"`
	Resolution  string     `json:"resolution,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Notification is an entry in the user-facing notification inbox.
type Notification struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Timestamp time.Time  `json:"timestamp"`
	Read      bool       `json:"read"`
	Severity  string     `json:"severity"`
	ActionURL string     `json:"action_url"`
	Source    string     `json:"source"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Project is a tracked initiative on the collaboration board.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Progress    int        `json:"progress"` // 0-100
	Budget      float64    `json:"budget"`
	Spent       float64    `json:"spent"` // not checked against Budget
	TeamSize    int        `json:"team_size"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Lead        string     `json:"lead"`
	Category    string     `json:"category"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// Service is a monitored service in the health overview.
type Service struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"` // "healthy", "degraded", "warning"
	Uptime       float64   `json:"uptime"`
	ResponseTime int       `json:"response_time"` // ms
	LastIncident time.Time `json:"last_incident"`
	Environment  string    `json:"environment"`
}

// IdentityUser is a directory entry shown in identity management.
type IdentityUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Department  string    `json:"department"`
	Status      string    `json:"status"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
	Permissions []string  `json:"permissions"`
	MFAEnabled  bool      `json:"mfa_enabled"`
}

// Preferences are per-user UI settings.
type Preferences struct {
	Theme           string `json:"theme"`
	Notifications   bool   `json:"notifications"`
	DashboardLayout string `json:"dashboard_layout"`
}

// UserProfile is stored under user_profile:<id>.
type UserProfile struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	Department  string      `json:"department"`
	CreatedAt   time.Time   `json:"created_at"`
	LastLogin   *time.Time  `json:"last_login"`
	Preferences Preferences `json:"preferences"`
}

// AuditEvent is one entry of the audit trail.
type AuditEvent struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	UserID    *string   `json:"user_id"`
	UserEmail string    `json:"user_email,omitempty"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Details   string    `json:"details,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// ChatRecord is one persisted side of a chat exchange.
type ChatRecord struct {
	UserID      string    `json:"user_id"`
	Message     string    `json:"message"`
	Context     string    `json:"context"`
	Timestamp   time.Time `json:"timestamp"`
	Type        string    `json:"type"` // "user" or "bot"
	Suggestions []string  `json:"suggestions,omitempty"`
}

// AlertEvent is sent to notification providers when an alert is created or
// changes status.
type AlertEvent struct {
	Kind      string    `json:"kind"`
	Alert     Alert     `json:"alert"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert event kinds.
const (
	AlertCreated       = "created"
	AlertStatusChanged = "status_changed"
)
