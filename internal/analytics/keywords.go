package analytics

import "reviewpulse/internal/domain"

// Weight rescale handed to the cloud renderer: a raw frequency of 1
// renders at 30, each extra occurrence adds 10. Keeps rare terms
// legible in a size-based layout.
const (
	weightPerHit = 10
	weightFloor  = 20
)

// ExtractKeywords tallies every record's keywords across the whole
// snapshot and rescales frequency into renderer weight. Output keeps
// first-occurrence order; the renderer owns any layout reordering.
func ExtractKeywords(records []domain.ReviewRecord) []domain.TermWeight {
	var order []string
	freq := make(map[string]int)
	for _, r := range records {
		for _, term := range r.Keywords {
			if _, seen := freq[term]; !seen {
				order = append(order, term)
			}
			freq[term]++
		}
	}

	out := make([]domain.TermWeight, 0, len(order))
	for _, term := range order {
		f := freq[term]
		out = append(out, domain.TermWeight{
			Term:   term,
			Count:  f,
			Weight: f*weightPerHit + weightFloor,
		})
	}
	return out
}
