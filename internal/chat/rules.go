package chat

import "strings"

// Intent is the bucket a chat message is routed to.
type Intent string

const (
	IntentCost           Intent = "cost"
	IntentIncident       Intent = "incident"
	IntentSustainability Intent = "sustainability"
	IntentAutomation     Intent = "automation"
	IntentDefault        Intent = "default"
)

type rule struct {
	intent      Intent
	keywords    []string
	body        string
	suggestions []string
}

func (r rule) matches(lower string) bool {
	for _, kw := range r.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// rules are evaluated in order and the first match wins. Keywords are plain
// substrings, so "ai" also matches inside other words.
var rules = []rule{
	{
		intent:   IntentCost,
		keywords: []string{"cost", "save", "optimize"},
		body: `💰 **Cost Optimization Analysis:**

Based on real-time data analysis, I've identified these opportunities:

**High Impact:**
• Right-size 23 oversized EC2 instances → $24,000/month savings
• Purchase Reserved Instances for consistent workloads → $35,000/month savings

**Medium Impact:**
• Migrate cold storage to IA/Glacier → $12,000/month savings
• Optimize network traffic routing → $8,500/month savings

**Total Potential Savings: $79,500/month (31% reduction)**

Would you like me to create an implementation roadmap?`,
		suggestions: []string{
			"Create implementation roadmap",
			"Prioritize by ROI",
			"Schedule optimization tasks",
			"Generate executive report",
		},
	},
	{
		intent:   IntentIncident,
		keywords: []string{"alert", "incident", "problem"},
		body: `🚨 **Current System Status:**

**Critical Alerts (2):**
• Database timeout in Payment API - 2 hours active
• High CPU usage on web frontend - 30 minutes active

**Recommendations:**
1. Scale Payment API database connections immediately
2. Enable auto-scaling for web frontend
3. Review recent deployments for potential causes

**Impact Assessment:**
• Payment processing: 15% slower response times
• User experience: Minimal impact detected

Should I initiate automated remediation procedures?`,
		suggestions: []string{
			"Start automated remediation",
			"Escalate to on-call engineer",
			"View detailed diagnostics",
			"Create incident report",
		},
	},
	{
		intent:   IntentSustainability,
		keywords: []string{"esg", "carbon", "sustainability"},
		body: `🌱 **ESG Impact Dashboard:**

**Current Performance:**
• Carbon Footprint: 40.7 tCO₂/month (-27% YTD)
• Renewable Energy: 68% of total consumption
• Water Efficiency: 83% (industry leading)

**Smart Recommendations:**
1. **Workload Scheduling:** Shift batch jobs to low-carbon hours
   → Reduce 2.4 tCO₂/month (6% improvement)

2. **Green Computing:** Optimize for renewable energy availability
   → Target 85% renewable by Q4

3. **Efficiency Gains:** Advanced cooling optimization
   → 15% reduction in energy consumption

**Compliance Status:** On track for carbon neutrality by 2030`,
		suggestions: []string{
			"Implement smart scheduling",
			"View renewable energy plan",
			"Generate ESG report",
			"Set sustainability goals",
		},
	},
	{
		intent:   IntentAutomation,
		keywords: []string{"ai", "predict", "automat"},
		body: `🤖 **AI Operations Intelligence:**

**Predictive Insights:**
• 94.2% accuracy in resource demand forecasting
• Next Tuesday: 23% CPU spike predicted (high confidence)
• Cost anomaly detected in Azure storage (+340% unusual)

**Active Automations:**
• Incident response: 78% automated resolution
• Resource scaling: 92% predictive scaling success
• Security threats: Real-time ML-based detection

**Model Performance:**
• Anomaly Detection: 96.1% accuracy
• Cost Prediction: 89.5% accuracy
• Performance Forecasting: 94.2% accuracy

**ROI Impact:** $127K saved YTD through AI optimizations`,
		suggestions: []string{
			"Review prediction models",
			"Configure auto-scaling",
			"Investigate cost anomaly",
			"Enhance automation rules",
		},
	},
}

const defaultBody = `I understand you're asking about "%s".

As your OrganizeIT AI Assistant, I have access to real-time data across:
• IT Operations & Monitoring
• Financial Operations (FinOps)
• ESG & Sustainability Metrics
• Security & Compliance
• Resource Optimization

I can help you with analysis, recommendations, troubleshooting, and automation. What specific area would you like to explore?`

var defaultSuggestions = []string{
	"Analyze current performance",
	"Show optimization opportunities",
	"Check system health",
	"Review recent changes",
}
