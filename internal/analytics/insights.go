package analytics

import (
	"sort"
	"strings"

	"reviewpulse/internal/domain"
)

// SignalCategory names one of the fixed annotation columns the insights
// view groups by.
type SignalCategory struct {
	Key   string
	Label string
	get   func(domain.ReviewRecord) string
}

// Value returns the record's cell for this category.
func (c SignalCategory) Value(r domain.ReviewRecord) string { return c.get(r) }

// SignalCategories is the fixed, ordered category set of the insights
// view.
var SignalCategories = []SignalCategory{
	{domain.ColSecurityConcern, "Security Concerns", func(r domain.ReviewRecord) string { return r.SecurityConcern }},
	{domain.ColLegalRisk, "Legal Risks", func(r domain.ReviewRecord) string { return r.LegalRisk }},
	{domain.ColHighValueCustomer, "VIP Customers", func(r domain.ReviewRecord) string { return r.HighValueCustomer }},
	{domain.ColCompetitorMention, "Competition", func(r domain.ReviewRecord) string { return r.CompetitorMention }},
	{domain.ColBranchMention, "Branch Feedback", func(r domain.ReviewRecord) string { return r.BranchMention }},
	{domain.ColMarketingOpportunity, "Marketing Opportunities", func(r domain.ReviewRecord) string { return r.MarketingOpportunity }},
	{domain.ColOnboarding, "Onboarding", func(r domain.ReviewRecord) string { return r.OnboardingExperience }},
	{domain.ColUpdateImpact, "Update Impact", func(r domain.ReviewRecord) string { return r.UpdateImpact }},
}

// CategoryBucket is one insights category with the records that carry a
// real value in it.
type CategoryBucket struct {
	Key     string                `json:"key"`
	Label   string                `json:"label"`
	Records []domain.ReviewRecord `json:"records"`
}

// CategorizeSignals buckets records under each category whose cell is
// non-empty and not (case-insensitively) "none". Categories keep their
// fixed order; empty categories are kept with a nil slice so callers
// can distinguish "no hits" from "unknown category".
func CategorizeSignals(records []domain.ReviewRecord) []CategoryBucket {
	out := make([]CategoryBucket, 0, len(SignalCategories))
	for _, cat := range SignalCategories {
		b := CategoryBucket{Key: cat.Key, Label: cat.Label}
		for _, r := range records {
			if signalPresent(cat.get(r)) {
				b.Records = append(b.Records, r)
			}
		}
		out = append(out, b)
	}
	return out
}

func signalPresent(v string) bool {
	return v != "" && !strings.EqualFold(v, domain.NoneSentinel)
}

// FrequentCommenters counts reviews per reviewer name, keeps repeat
// commenters (count > 1) and orders them by count descending. Ties keep
// first-appearance order.
func FrequentCommenters(records []domain.ReviewRecord) []domain.CommenterCount {
	var order []string
	counts := make(map[string]int)
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if _, seen := counts[r.Name]; !seen {
			order = append(order, r.Name)
		}
		counts[r.Name]++
	}

	var out []domain.CommenterCount
	for _, name := range order {
		if counts[name] > 1 {
			out = append(out, domain.CommenterCount{Name: name, Count: counts[name]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// DistinctTeams lists every team seen across the snapshot, split from
// multi-valued cells, in first-appearance order.
func DistinctTeams(records []domain.ReviewRecord) []string {
	return distinct(records, func(r domain.ReviewRecord) []string { return r.AssignedTeams })
}

// DistinctApps lists app names, Unassigned for empty cells.
func DistinctApps(records []domain.ReviewRecord) []string {
	return distinct(records, ByApp)
}

// DistinctPlatforms lists scraped platforms, Unassigned for empty cells.
func DistinctPlatforms(records []domain.ReviewRecord) []string {
	return distinct(records, ByPlatform)
}

func distinct(records []domain.ReviewRecord, keyFn KeyFunc) []string {
	var order []string
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, k := range keyFn(r) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			order = append(order, k)
		}
	}
	return order
}
