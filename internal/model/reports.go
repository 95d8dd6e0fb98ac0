package model

// CarbonReport is the ESG carbon footprint payload.
type CarbonReport struct {
	CurrentFootprint    float64        `json:"current_footprint"`
	MonthlyTrend        float64        `json:"monthly_trend"`
	Breakdown           []CarbonSource `json:"breakdown"`
	RenewablePercentage int            `json:"renewable_percentage"`
	EfficiencyScore     int            `json:"efficiency_score"`
	Targets             CarbonTargets  `json:"targets"`
}

type CarbonSource struct {
	Name      string  `json:"name"`
	Value     int     `json:"value"`
	Emissions float64 `json:"emissions"`
	Color     string  `json:"color"`
}

type CarbonTargets struct {
	CarbonNeutralBy  string `json:"carbon_neutral_by"`
	RenewableTarget  int    `json:"renewable_target"`
	EfficiencyTarget int    `json:"efficiency_target"`
}

// SustainabilityReport is the ESG sustainability payload.
type SustainabilityReport struct {
	Metrics          SustainabilityMetrics `json:"metrics"`
	Initiatives      []Initiative          `json:"initiatives"`
	ComplianceStatus map[string]string     `json:"compliance_status"`
}

type SustainabilityMetrics struct {
	EnergyEfficiency       int `json:"energy_efficiency"`
	WaterUsageEfficiency   int `json:"water_usage_efficiency"`
	WasteReduction         int `json:"waste_reduction"`
	SustainableProcurement int `json:"sustainable_procurement"`
}

type Initiative struct {
	Name         string  `json:"name"`
	Status       string  `json:"status"`
	Impact       string  `json:"impact"`
	CO2Reduction float64 `json:"co2_reduction"`
	Timeline     string  `json:"timeline"`
}

// CostOpportunity is a FinOps savings opportunity.
type CostOpportunity struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	PotentialSavings int64  `json:"potential_savings"`
	Effort           string `json:"effort"`
	Impact           string `json:"impact"`
	Provider         string `json:"provider"`
	Category         string `json:"category"`
	Timeline         string `json:"timeline"`
	Status           string `json:"status"`
}

// AIInsights is the AI insights dashboard payload.
type AIInsights struct {
	CostOptimization       CostInsights           `json:"cost_optimization"`
	PerformanceInsights    PerformanceInsights    `json:"performance_insights"`
	SecurityAnalysis       SecurityAnalysis       `json:"security_analysis"`
	SustainabilityInsights SustainabilityInsights `json:"sustainability_insights"`
}

type CostInsights struct {
	TotalSavingsIdentified    int64            `json:"total_savings_identified"`
	HighImpactOpportunities   int              `json:"high_impact_opportunities"`
	MediumImpactOpportunities int              `json:"medium_impact_opportunities"`
	Recommendations           []Recommendation `json:"recommendations"`
}

type Recommendation struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Impact     string `json:"impact"`
	Savings    int64  `json:"savings"`
	Confidence int    `json:"confidence"`
	Effort     string `json:"effort"`
	Timeline   string `json:"timeline"`
}

type PerformanceInsights struct {
	AnomaliesDetected int           `json:"anomalies_detected"`
	PredictiveAlerts  int           `json:"predictive_alerts"`
	OptimizationScore int           `json:"optimization_score"`
	Trends            []MetricTrend `json:"trends"`
}

type MetricTrend struct {
	Metric   string  `json:"metric"`
	Trend    string  `json:"trend"`
	Change   float64 `json:"change"`
	Forecast string  `json:"forecast"`
}

type SecurityAnalysis struct {
	RiskScore            int `json:"risk_score"`
	VulnerabilitiesFound int `json:"vulnerabilities_found"`
	PatchesAvailable     int `json:"patches_available"`
	ComplianceScore      int `json:"compliance_score"`
}

type SustainabilityInsights struct {
	CarbonReductionOpportunities   int   `json:"carbon_reduction_opportunities"`
	EfficiencyImprovements         int   `json:"efficiency_improvements"`
	RenewableEnergyRecommendations int   `json:"renewable_energy_recommendations"`
	ProjectedSavings               int64 `json:"projected_savings"`
}

// ResourceOptimization is the right-sizing summary payload.
type ResourceOptimization struct {
	Summary         OptimizationSummary      `json:"summary"`
	Recommendations []ResourceRecommendation `json:"recommendations"`
	Categories      []ResourceCategory       `json:"categories"`
}

type OptimizationSummary struct {
	TotalResources   int   `json:"total_resources"`
	Underutilized    int   `json:"underutilized"`
	Overutilized     int   `json:"overutilized"`
	Optimized        int   `json:"optimized"`
	PotentialSavings int64 `json:"potential_savings"`
	EfficiencyScore  int   `json:"efficiency_score"`
}

type ResourceRecommendation struct {
	ID              string `json:"id"`
	Type            string `json:"type"` // "downsize", "terminate", "upsize"
	Resource        string `json:"resource"`
	CurrentSpec     string `json:"current_spec"`
	RecommendedSpec string `json:"recommended_spec"`
	Utilization     int    `json:"utilization"`
	Savings         int64  `json:"savings,omitempty"`
	Confidence      int    `json:"confidence,omitempty"`
	CostIncrease    int64  `json:"cost_increase,omitempty"`
	PerformanceGain int    `json:"performance_gain,omitempty"`
}

type ResourceCategory struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Optimized int    `json:"optimized"`
	Savings   int64  `json:"savings"`
}
