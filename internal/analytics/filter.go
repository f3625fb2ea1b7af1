package analytics

import (
	"sort"
	"strings"
	"time"

	"reviewpulse/internal/domain"
)

// Predicate is one filter over a record. Predicates compose with AND.
type Predicate func(domain.ReviewRecord) bool

// Filter keeps records matching every predicate, preserving source
// order.
func Filter(records []domain.ReviewRecord, preds ...Predicate) []domain.ReviewRecord {
	out := make([]domain.ReviewRecord, 0, len(records))
	for _, r := range records {
		if matchesAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func matchesAll(r domain.ReviewRecord, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

// TextFilter matches a case-insensitive substring against the fixed
// searchable fields: name, comment, app name, sentiment, status. An
// empty query matches everything.
func TextFilter(query string) Predicate {
	q := strings.ToLower(query)
	return func(r domain.ReviewRecord) bool {
		if q == "" {
			return true
		}
		for _, field := range []string{r.Name, r.Comment, r.AppName, r.Sentiment, r.Status} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
}

// CategoricalFilter matches the field extracted by get exactly. An
// empty selection matches everything; selecting the Unassigned or None
// sentinel matches records whose field is empty (or the sentinel
// itself, since the normalizer may already have substituted it).
func CategoricalFilter(selected string, get func(domain.ReviewRecord) string) Predicate {
	return func(r domain.ReviewRecord) bool {
		if selected == "" {
			return true
		}
		v := get(r)
		if selected == domain.Unassigned || selected == domain.NoneSentinel {
			return v == "" || v == domain.Unassigned || v == domain.NoneSentinel
		}
		return v == selected
	}
}

// TeamFilter matches records assigned to the given team. A record on
// several teams matches each of them.
func TeamFilter(team string) Predicate {
	return func(r domain.ReviewRecord) bool {
		if team == "" {
			return true
		}
		for _, t := range r.AssignedTeams {
			if t == team {
				return true
			}
		}
		return false
	}
}

// ChurnRiskFilter keeps records whose churn prediction strictly exceeds
// the threshold. The high-risk view uses HighChurnThreshold.
func ChurnRiskFilter(thresholdPct int) Predicate {
	return func(r domain.ReviewRecord) bool {
		return r.ChurnPrediction > thresholdPct
	}
}

// HasFeatureRequest keeps records carrying a real feature request.
func HasFeatureRequest() Predicate {
	return domain.ReviewRecord.HasFeatureRequest
}

// HasResolution keeps records with an AI-suggested resolution.
func HasResolution() Predicate {
	return func(r domain.ReviewRecord) bool { return r.AIResolution != "" }
}

// SinceFilter keeps records dated on or after the cut-off. Records with
// unparsed dates never match a date-range filter.
func SinceFilter(cutoff time.Time) Predicate {
	return func(r domain.ReviewRecord) bool {
		return r.DateParsed && !r.Date.Before(cutoff)
	}
}

// SortByDateDesc orders records newest first, stably. Unparsed dates
// sort as the zero time, landing at the end. The input is not mutated.
func SortByDateDesc(records []domain.ReviewRecord) []domain.ReviewRecord {
	out := make([]domain.ReviewRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
