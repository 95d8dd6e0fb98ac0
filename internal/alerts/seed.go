package alerts

import (
	"fmt"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

func seed(now time.Time) []model.Alert {
	now = now.UTC()
	ms := now.UnixMilli()
	return []model.Alert{
		{
			ID:          fmt.Sprintf("ALT-%d-001", ms),
			Severity:    model.SeverityHigh,
			Title:       "Database Connection Pool Exhaustion",
			Description: "Payment processing database showing connection pool exhaustion. Response times increased by 300%.",
			Service:     "Payment API",
			Timestamp:   now.Add(-150 * time.Minute),
			Status:      model.AlertActive,
			Impact:      "Payment processing delays",
			Assignee:    "john.doe@company.com",
			Environment: "Production",
		},
		{
			ID:          fmt.Sprintf("ALT-%d-002", ms),
			Severity:    model.SeverityMedium,
			Title:       "Memory Usage Threshold Exceeded",
			Description: "Web frontend instances consistently above 85% memory utilization.",
			Service:     "Web Frontend",
			Timestamp:   now.Add(-45 * time.Minute),
			Status:      model.AlertInvestigating,
			Impact:      "Potential performance degradation",
			Assignee:    "sarah.johnson@company.com",
			Environment: "Production",
		},
		{
			ID:          fmt.Sprintf("ALT-%d-003", ms),
			Severity:    model.SeverityLow,
			Title:       "SSL Certificate Expiring Soon",
			Description: "API gateway SSL certificate expires in 14 days.",
			Service:     "API Gateway",
			Timestamp:   now.Add(-6 * time.Hour),
			Status:      model.AlertAcknowledged,
			Impact:      "Future service disruption if not renewed",
			Assignee:    "mike.chen@company.com",
			Environment: "Production",
		},
	}
}
