package analytics

import "reviewpulse/internal/domain"

// KeyFunc maps a record to the group keys it belongs to. A record with
// several keys lands in every matching bucket, so per-bucket totals may
// sum past the snapshot size.
type KeyFunc func(domain.ReviewRecord) []string

// Grouping holds buckets in first-appearance key order. Within a bucket
// records keep their source order.
type Grouping struct {
	keys    []string
	buckets map[string][]domain.ReviewRecord
}

// GroupBy partitions records into named buckets. Empty input yields an
// empty grouping.
func GroupBy(records []domain.ReviewRecord, keyFn KeyFunc) *Grouping {
	g := &Grouping{buckets: make(map[string][]domain.ReviewRecord)}
	for _, r := range records {
		for _, k := range keyFn(r) {
			if _, seen := g.buckets[k]; !seen {
				g.keys = append(g.keys, k)
			}
			g.buckets[k] = append(g.buckets[k], r)
		}
	}
	return g
}

// Keys returns group keys in first-appearance order.
func (g *Grouping) Keys() []string { return g.keys }

// Bucket returns the records for one key; nil for an unknown key.
func (g *Grouping) Bucket(key string) []domain.ReviewRecord { return g.buckets[key] }

// Len reports the number of buckets.
func (g *Grouping) Len() int { return len(g.keys) }

// ByTeam keys a record by each of its assigned teams.
func ByTeam(r domain.ReviewRecord) []string { return r.AssignedTeams }

// ByApp keys a record by app name, Unassigned when empty.
func ByApp(r domain.ReviewRecord) []string {
	if r.AppName == "" {
		return []string{domain.Unassigned}
	}
	return []string{r.AppName}
}

// ByPlatform keys a record by the platform it was scraped from.
func ByPlatform(r domain.ReviewRecord) []string {
	if r.Platform == "" {
		return []string{domain.Unassigned}
	}
	return []string{r.Platform}
}
