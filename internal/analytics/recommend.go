package analytics

import (
	"fmt"

	"reviewpulse/internal/domain"
)

// Recommend maps one team's metrics to an ordered list of advice
// strings. Rules fire in fixed order, not by severity; when none fire a
// single maintain-performance message comes back.
func Recommend(m domain.TeamMetrics) []string {
	var recs []string

	if m.CriticalTasks > 1 {
		recs = append(recs, fmt.Sprintf("Prioritize resolution of %d critical issues currently assigned", m.CriticalTasks))
	}
	if m.AverageImpact > 70 {
		recs = append(recs, "Implement additional quality checks before deployment to reduce high-impact issues")
	}
	if m.AverageRetentionRisk > 70 {
		recs = append(recs, "Focus on customer retention strategies by addressing key pain points")
	}
	if m.OpenTasks > m.ClosedTasks*2 {
		recs = append(recs, "Consider task redistribution or additional resources to address backlog")
	}

	if len(recs) == 0 {
		recs = append(recs, "Maintain current performance levels and continue regular quality checks")
	}
	return recs
}

// RecommendAllTeams is the fixed message set for the aggregate view;
// no per-metric evaluation happens across teams.
func RecommendAllTeams() []string {
	return []string{
		"Conduct cross-team knowledge sharing sessions to address common issues",
		"Implement standardized incident response protocols across all teams",
		"Review resource allocation based on task distribution analysis",
		"Schedule regular product reviews with representatives from each team",
	}
}
