package inbox

import (
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

func seed(now time.Time) []model.Notification {
	now = now.UTC()
	ago := func(d time.Duration) time.Time { return now.Add(-d) }
	items := []model.Notification{
		{
			ID:        "NOT-001",
			Type:      "alert",
			Title:     "High CPU Usage Detected",
			Message:   "Web frontend instances showing sustained high CPU usage above 85% threshold",
			Timestamp: ago(30 * time.Minute),
			Severity:  "warning",
			ActionURL: "/it-operations?tab=performance",
			Source:    "Monitoring System",
		},
		{
			ID:        "NOT-002",
			Type:      "cost",
			Title:     "Monthly Budget Alert",
			Message:   "Cloud spending is 15% above projected budget for this month ($285K vs $248K planned)",
			Timestamp: ago(2 * time.Hour),
			Severity:  "warning",
			ActionURL: "/finops?tab=budget",
			Source:    "FinOps Analytics",
		},
		{
			ID:        "NOT-003",
			Type:      "security",
			Title:     "Security Patch Available",
			Message:   "Critical security patches available for 12 production instances - CVE-2024-1234",
			Timestamp: ago(4 * time.Hour),
			Read:      true,
			Severity:  "high",
			ActionURL: "/audit?tab=compliance",
			Source:    "Security Scanner",
		},
		{
			ID:        "NOT-004",
			Type:      "esg",
			Title:     "Carbon Footprint Reduction",
			Message:   "Monthly carbon emissions reduced by 12% through optimization initiatives",
			Timestamp: ago(6 * time.Hour),
			Severity:  "info",
			ActionURL: "/esg?tab=carbon",
			Source:    "ESG Monitoring",
		},
		{
			ID:        "NOT-005",
			Type:      "ai",
			Title:     "Cost Optimization Opportunity",
			Message:   "AI analysis identified $79,500/month potential savings from right-sizing instances",
			Timestamp: ago(8 * time.Hour),
			Severity:  "info",
			ActionURL: "/ai-insights?tab=cost",
			Source:    "AI Analytics Engine",
		},
		{
			ID:        "NOT-006",
			Type:      "system",
			Title:     "Database Performance Alert",
			Message:   "Payment processing database showing connection pool exhaustion",
			Timestamp: ago(12 * time.Hour),
			Read:      true,
			Severity:  "critical",
			ActionURL: "/it-operations?tab=incidents",
			Source:    "Database Monitor",
		},
	}
	for i := range items {
		items[i].UpdatedAt = &now
	}
	return items
}
