package projects

import (
	"time"

	"github.com/darshan-rambhia/organizeit/internal/model"
)

func seed(time.Time) []model.Project {
	return []model.Project{
		{
			ID:          "PROJ-001",
			Name:        "Cloud Migration Phase 2",
			Description: "Migrate remaining on-premise workloads to hybrid cloud",
			Status:      model.ProjectInProgress,
			Priority:    "High",
			Progress:    67,
			Budget:      250000,
			Spent:       165000,
			TeamSize:    8,
			StartDate:   "2024-01-15",
			EndDate:     "2024-06-30",
			Lead:        "Sarah Johnson",
			Category:    "Infrastructure",
		},
		{
			ID:          "PROJ-002",
			Name:        "Security Compliance Upgrade",
			Description: "Implement SOC2 Type II compliance across all systems",
			Status:      model.ProjectPlanning,
			Priority:    "High",
			Progress:    23,
			Budget:      180000,
			Spent:       42000,
			TeamSize:    5,
			StartDate:   "2024-02-01",
			EndDate:     "2024-08-15",
			Lead:        "Mike Chen",
			Category:    "Security",
		},
		{
			ID:          "PROJ-003",
			Name:        "AI-Powered Monitoring",
			Description: "Deploy machine learning models for predictive monitoring",
			Status:      model.ProjectInProgress,
			Priority:    "Medium",
			Progress:    45,
			Budget:      120000,
			Spent:       54000,
			TeamSize:    4,
			StartDate:   "2024-03-01",
			EndDate:     "2024-07-31",
			Lead:        "David Kim",
			Category:    "Innovation",
		},
	}
}
