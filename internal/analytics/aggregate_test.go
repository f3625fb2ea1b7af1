package analytics_test

import (
	"testing"

	"reviewpulse/internal/analytics"
	"reviewpulse/internal/domain"
)

func statusRec(status string) domain.ReviewRecord {
	return domain.ReviewRecord{Status: status, AssignedTeams: []string{"A"}, IssueTypes: []string{domain.Unassigned}}
}

func TestAggregate_EmptyBucket(t *testing.T) {
	m := analytics.Aggregate(nil)
	if m.TotalTasks != 0 || m.AverageImpact != 0 || m.AverageRetentionRisk != 0 {
		t.Fatalf("empty bucket must zero out: %+v", m)
	}
	if m.StatusCounts[domain.StatusPending] != 0 || len(m.StatusCounts) != 5 {
		t.Fatalf("status counts must be seeded: %v", m.StatusCounts)
	}
}

func TestAggregate_OpenClosedCritical(t *testing.T) {
	bucket := []domain.ReviewRecord{
		statusRec(domain.StatusCritical),
		statusRec(domain.StatusCritical),
		statusRec(domain.StatusCompleted),
	}

	m := analytics.Aggregate(bucket)

	if m.CriticalTasks != 2 {
		t.Fatalf("criticalTasks = %d, want 2", m.CriticalTasks)
	}
	if m.OpenTasks != 2 {
		t.Fatalf("openTasks = %d, want 2", m.OpenTasks)
	}
	if m.ClosedTasks != 1 {
		t.Fatalf("closedTasks = %d, want 1", m.ClosedTasks)
	}
	if m.TotalTasks != 3 {
		t.Fatalf("totalTasks = %d, want 3", m.TotalTasks)
	}
}

// Averages deliberately include zero-defaulted rows in the denominator.
// A record whose impact cell was unparsable contributes 0, dragging the
// mean down; correcting this would be a behavior change, not a bugfix.
func TestAggregate_AveragesIncludeZeroDefaultedRows(t *testing.T) {
	bucket := []domain.ReviewRecord{
		{Status: domain.StatusPending, ImpactScore: 90, RetentionRisk: 80},
		{Status: domain.StatusPending, ImpactScore: 0, RetentionRisk: 0}, // "abc" cell, defaulted
	}

	m := analytics.Aggregate(bucket)

	if m.AverageImpact != 45 {
		t.Fatalf("averageImpact = %d, want 45 (denominator includes defaulted row)", m.AverageImpact)
	}
	if m.AverageRetentionRisk != 40 {
		t.Fatalf("averageRetentionRisk = %d, want 40", m.AverageRetentionRisk)
	}
}

func TestAggregate_RoundsToNearest(t *testing.T) {
	bucket := []domain.ReviewRecord{
		{ImpactScore: 1},
		{ImpactScore: 2},
	}
	if m := analytics.Aggregate(bucket); m.AverageImpact != 2 {
		t.Fatalf("1.5 must round to 2, got %d", m.AverageImpact)
	}
}

func TestAggregate_CountsLiteralKeys(t *testing.T) {
	bucket := []domain.ReviewRecord{
		{Status: "Reopened", Sentiment: "Mixed", IssueTypes: []string{"Bug"}},
		{Status: domain.StatusBlocked, Sentiment: domain.SentimentPositive, IssueTypes: []string{"Bug", "UX"}},
	}

	m := analytics.Aggregate(bucket)

	if m.StatusCounts["Reopened"] != 1 {
		t.Fatalf("unknown status must count under its literal key: %v", m.StatusCounts)
	}
	if m.SentimentCounts["Mixed"] != 1 {
		t.Fatalf("unknown sentiment must count literally: %v", m.SentimentCounts)
	}
	if m.IssueTypeCounts["Bug"] != 2 || m.IssueTypeCounts["UX"] != 1 {
		t.Fatalf("issue counts: %v", m.IssueTypeCounts)
	}
	// Blocked is closed: not in the open set.
	if m.OpenTasks != 0 || m.ClosedTasks != 2 {
		t.Fatalf("open/closed = %d/%d, want 0/2", m.OpenTasks, m.ClosedTasks)
	}
}

func TestSummarizeSentiment_UnknownFoldsToNeutral(t *testing.T) {
	records := []domain.ReviewRecord{
		{Sentiment: domain.SentimentPositive},
		{Sentiment: domain.SentimentNegative},
		{Sentiment: "Mixed"},
		{Sentiment: ""},
	}

	s := analytics.SummarizeSentiment(records)
	if s.Positive != 1 || s.Negative != 1 || s.Neutral != 2 {
		t.Fatalf("summary = %+v", s)
	}
}
