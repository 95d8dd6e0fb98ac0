package identity

import (
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

func seedUsers(now time.Time) []model.IdentityUser {
	now = now.UTC()
	return []model.IdentityUser{
		{
			ID:          "USR-001",
			Name:        "Sarah Johnson",
			Email:       "sarah.johnson@organizeit.com",
			Role:        "System Administrator",
			Department:  "IT Operations",
			Status:      "Active",
			LastLogin:   now.Add(-2 * time.Hour),
			CreatedAt:   model.MustParseTime("2024-01-15T10:00:00Z"),
			Permissions: []string{"admin", "read", "write", "delete"},
			MFAEnabled:  true,
		},
		{
			ID:          "USR-002",
			Name:        "Mike Chen",
			Email:       "mike.chen@organizeit.com",
			Role:        "DevOps Engineer",
			Department:  "Engineering",
			Status:      "Active",
			LastLogin:   now.Add(-4 * time.Hour),
			CreatedAt:   model.MustParseTime("2024-01-20T14:30:00Z"),
			Permissions: []string{"read", "write", "deploy"},
			MFAEnabled:  true,
		},
		{
			ID:          "USR-003",
			Name:        "David Kim",
			Email:       "david.kim@organizeit.com",
			Role:        "Data Engineer",
			Department:  "Analytics",
			Status:      "Active",
			LastLogin:   now.Add(-24 * time.Hour),
			CreatedAt:   model.MustParseTime("2024-02-01T09:15:00Z"),
			Permissions: []string{"read", "write", "analytics"},
			MFAEnabled:  false,
		},
	}
}

func seedAudit(now time.Time) []model.AuditEvent {
	now = now.UTC()
	uid := func(s string) *string { return &s }
	return []model.AuditEvent{
		{
			ID:        "AUD-001",
			EventType: "user_login",
			UserID:    uid("USR-001"),
			UserEmail: "sarah.johnson@organizeit.com",
			Action:    "successful_login",
			Resource:  "authentication_system",
			IPAddress: "192.168.1.100",
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			Timestamp: now.Add(-30 * time.Minute),
			Status:    model.AuditSuccess,
		},
		{
			ID:        "AUD-002",
			EventType: "configuration_change",
			UserID:    uid("USR-002"),
			UserEmail: "mike.chen@organizeit.com",
			Action:    "updated_security_policy",
			Resource:  "firewall_rules",
			Details:   "Modified port 443 access rules",
			IPAddress: "192.168.1.105",
			Timestamp: now.Add(-2 * time.Hour),
			Status:    model.AuditSuccess,
		},
		{
			ID:        "AUD-003",
			EventType: "resource_access",
			UserID:    uid("USR-003"),
			UserEmail: "david.kim@organizeit.com",
			Action:    "accessed_sensitive_data",
			Resource:  "customer_database",
			Details:   "Exported customer analytics report",
			IPAddress: "192.168.1.110",
			Timestamp: now.Add(-4 * time.Hour),
			Status:    model.AuditSuccess,
		},
		{
			ID:        "AUD-004",
			EventType: "failed_access",
			UserEmail: "unknown@external.com",
			Action:    "failed_login_attempt",
			Resource:  "authentication_system",
			Details:   "Multiple failed password attempts",
			IPAddress: "203.0.113.45",
			Timestamp: now.Add(-6 * time.Hour),
			Status:    model.AuditBlocked,
		},
	}
}
