package analytics

import (
	"math"

	"reviewpulse/internal/domain"
)

// Aggregate reduces one bucket to its TeamMetrics. It cannot fail: an
// empty bucket yields zeroed counts and zero averages.
//
// The averages run over every record in the bucket. Records whose
// percentage cell failed to parse contribute their 0 default to the
// denominator, matching the upstream dashboard's arithmetic.
func Aggregate(bucket []domain.ReviewRecord) domain.TeamMetrics {
	m := domain.TeamMetrics{
		StatusCounts:    seedStatusCounts(),
		SentimentCounts: seedSentimentCounts(),
		IssueTypeCounts: make(map[string]int),
	}

	impactSum, riskSum := 0, 0
	for _, r := range bucket {
		m.TotalTasks++

		switch r.Status {
		case domain.StatusPending, domain.StatusInProgress, domain.StatusCritical:
			m.OpenTasks++
		}
		if r.Status == domain.StatusCritical {
			m.CriticalTasks++
		}

		// Literal keys, even outside the seeded enums. Raw counts never
		// drop data silently.
		m.StatusCounts[r.Status]++
		m.SentimentCounts[r.Sentiment]++
		for _, issue := range r.IssueTypes {
			m.IssueTypeCounts[issue]++
		}

		impactSum += r.ImpactScore
		riskSum += r.RetentionRisk
	}

	m.ClosedTasks = m.TotalTasks - m.OpenTasks
	if m.TotalTasks > 0 {
		m.AverageImpact = roundMean(impactSum, m.TotalTasks)
		m.AverageRetentionRisk = roundMean(riskSum, m.TotalTasks)
	}
	return m
}

func roundMean(sum, n int) int {
	return int(math.Round(float64(sum) / float64(n)))
}

func seedStatusCounts() map[string]int {
	return map[string]int{
		domain.StatusPending:    0,
		domain.StatusInProgress: 0,
		domain.StatusBlocked:    0,
		domain.StatusCompleted:  0,
		domain.StatusCritical:   0,
	}
}

func seedSentimentCounts() map[string]int {
	return map[string]int{
		domain.SentimentPositive: 0,
		domain.SentimentNeutral:  0,
		domain.SentimentNegative: 0,
	}
}

// SummarizeSentiment folds a snapshot into the typed three-way split.
// Values outside the known set count as Neutral.
func SummarizeSentiment(records []domain.ReviewRecord) domain.SentimentSummary {
	var s domain.SentimentSummary
	for _, r := range records {
		switch r.Sentiment {
		case domain.SentimentPositive:
			s.Positive++
		case domain.SentimentNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	return s
}
