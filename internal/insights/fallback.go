package insights

import "career-coach-backend/internal/generation"

func defaultSalaryRanges() []SalaryRange {
	return []SalaryRange{
		{Role: "Software Engineer", Min: 40000, Max: 120000, Median: 80000, Location: "Remote"},
		{Role: "Data Analyst", Min: 35000, Max: 90000, Median: 60000, Location: "Remote"},
		{Role: "Product Manager", Min: 50000, Max: 140000, Median: 90000, Location: "Remote"},
		{Role: "QA Engineer", Min: 30000, Max: 80000, Median: 55000, Location: "Remote"},
		{Role: "DevOps Engineer", Min: 50000, Max: 130000, Median: 85000, Location: "Remote"},
	}
}

// disabledFallback is served when no provider is configured.
func disabledFallback() Payload {
	return Payload{
		SalaryRanges:      defaultSalaryRanges(),
		GrowthRate:        8.5,
		DemandLevel:       "High",
		TopSkills:         []string{"JavaScript", "SQL", "Cloud", "APIs", "Problem Solving"},
		MarketOutlook:     "Positive",
		KeyTrends:         []string{"AI adoption", "Cloud migration", "Automation", "Security focus", "Remote work"},
		RecommendedSkills: []string{"TypeScript", "Python", "System Design", "Docker", "Kubernetes"},
	}
}

// failureFallback is served when the provider call or its output fails.
func failureFallback() Payload {
	return Payload{
		SalaryRanges:      defaultSalaryRanges(),
		GrowthRate:        7.0,
		DemandLevel:       "Medium",
		TopSkills:         []string{"Databases", "Version Control", "Testing", "CI/CD", "Cloud"},
		MarketOutlook:     "Neutral",
		KeyTrends:         []string{"Platform engineering", "Data-driven decisions", "Edge compute", "Sustainability", "Privacy"},
		RecommendedSkills: []string{"SQL", "CI/CD", "Observability", "Cloud", "Security basics"},
	}
}

func fallbackFor(gen *generation.Orchestrator) Payload {
	if gen.Enabled() {
		return failureFallback()
	}
	return disabledFallback()
}
