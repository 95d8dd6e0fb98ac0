// Package templates renders the server-side overview page.
package templates

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

// FormatCurrency formats whole dollars with thousands separators.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatPct formats a 0-100 percentage with one decimal.
func FormatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatDuration formats a duration into human-readable form.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// FormatAge formats how long before now t was, as "Xm", "Xh" or "Xd".
func FormatAge(t, now time.Time) string {
	age := now.Sub(t)
	if age < time.Hour {
		return fmt.Sprintf("%dm", int(age.Minutes()))
	}
	if age < 24*time.Hour {
		return fmt.Sprintf("%dh", int(age.Hours()))
	}
	return fmt.Sprintf("%dd", int(age.Hours()/24))
}

// FormatTime formats t in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// SeverityClass returns a CSS class for an alert severity.
func SeverityClass(severity string) string {
	switch severity {
	case model.SeverityCritical:
		return "status-critical"
	case model.SeverityHigh:
		return "status-warning"
	case model.SeverityLow:
		return "status-ok"
	default:
		return "status-unknown"
	}
}

// ServiceStatusClass returns a CSS class for a monitored service status.
func ServiceStatusClass(status string) string {
	switch status {
	case "healthy":
		return "status-ok"
	case "degraded":
		return "status-critical"
	default:
		return "status-warning"
	}
}

// ProgressBarWidth returns a width percentage capped to [0,100].
func ProgressBarWidth(pct float64) float64 {
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// ProgressBarClass returns CSS class based on usage percentage.
func ProgressBarClass(pct float64) string {
	if pct >= 90 {
		return "bar-critical"
	}
	if pct >= 75 {
		return "bar-warning"
	}
	return "bar-ok"
}

var severityRank = map[string]int{
	model.SeverityCritical: 0,
	model.SeverityHigh:     1,
	model.SeverityMedium:   2,
	model.SeverityLow:      3,
}

// OpenAlerts returns unresolved alerts, most severe first and newest first
// within a severity.
func OpenAlerts(alerts []model.Alert) []model.Alert {
	var open []model.Alert
	for _, a := range alerts {
		if a.Status != model.AlertResolved {
			open = append(open, a)
		}
	}
	slices.SortStableFunc(open, func(a, b model.Alert) int {
		if c := cmp.Compare(rank(a.Severity), rank(b.Severity)); c != 0 {
			return c
		}
		return b.Timestamp.Compare(a.Timestamp)
	})
	return open
}

func rank(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}

// CountServicesByStatus counts healthy and unhealthy services.
func CountServicesByStatus(svcs []model.Service) (healthy, other int) {
	for _, s := range svcs {
		if s.Status == "healthy" {
			healthy++
		} else {
			other++
		}
	}
	return
}

// ServicesHeading summarizes service health for the services section.
func ServicesHeading(svcs []model.Service) string {
	healthy, other := CountServicesByStatus(svcs)
	return fmt.Sprintf("Services (%d healthy, %d degraded)", healthy, other)
}
