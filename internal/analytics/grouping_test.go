package analytics_test

import (
	"reflect"
	"testing"

	"reviewpulse/internal/analytics"
	"reviewpulse/internal/domain"
)

func rec(id string, teams ...string) domain.ReviewRecord {
	return domain.ReviewRecord{ID: id, AssignedTeams: teams}
}

func TestGroupBy_MultiMembership(t *testing.T) {
	records := []domain.ReviewRecord{
		rec("1", "A", "B"),
		rec("2", "B"),
		rec("3", "C"),
	}

	g := analytics.GroupBy(records, analytics.ByTeam)

	if got, want := g.Keys(), []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	if n := len(g.Bucket("A")); n != 1 {
		t.Fatalf("bucket A size = %d, want 1", n)
	}
	if n := len(g.Bucket("B")); n != 2 {
		t.Fatalf("bucket B size = %d, want 2", n)
	}

	// A record on two teams counts once in each bucket, so total
	// membership exceeds the record count.
	total := 0
	for _, k := range g.Keys() {
		total += len(g.Bucket(k))
	}
	if total < len(records) {
		t.Fatalf("membership %d < record count %d", total, len(records))
	}
	if total != 4 {
		t.Fatalf("membership = %d, want 4", total)
	}
}

func TestGroupBy_PreservesSourceOrder(t *testing.T) {
	records := []domain.ReviewRecord{rec("1", "A"), rec("2", "A"), rec("3", "A")}
	g := analytics.GroupBy(records, analytics.ByTeam)

	bucket := g.Bucket("A")
	for i, r := range bucket {
		if r.ID != records[i].ID {
			t.Fatalf("bucket order broken at %d: %s", i, r.ID)
		}
	}
}

func TestGroupBy_Empty(t *testing.T) {
	g := analytics.GroupBy(nil, analytics.ByTeam)
	if g.Len() != 0 {
		t.Fatalf("expected empty grouping, got %d buckets", g.Len())
	}
	if g.Bucket("A") != nil {
		t.Fatalf("unknown key must yield nil bucket")
	}
}

func TestGroupBy_AppAndPlatformSentinels(t *testing.T) {
	records := []domain.ReviewRecord{
		{ID: "1", AppName: "MobileBank", Platform: "App Store"},
		{ID: "2"},
	}

	apps := analytics.GroupBy(records, analytics.ByApp)
	if got, want := apps.Keys(), []string{"MobileBank", domain.Unassigned}; !reflect.DeepEqual(got, want) {
		t.Fatalf("app keys = %v, want %v", got, want)
	}

	platforms := analytics.GroupBy(records, analytics.ByPlatform)
	if len(platforms.Bucket(domain.Unassigned)) != 1 {
		t.Fatalf("record without platform must land in %s", domain.Unassigned)
	}
}
