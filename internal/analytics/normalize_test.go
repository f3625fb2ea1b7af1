package analytics_test

import (
	"reflect"
	"testing"

	"reviewpulse/internal/analytics"
	"reviewpulse/internal/domain"
)

func TestNormalize_FullRow(t *testing.T) {
	row := domain.RawRow{
		domain.ColID:              "r-17",
		domain.ColName:            "Ana",
		domain.ColRating:          "Rated 4 stars out of five",
		domain.ColDate:            "5/16/2024",
		domain.ColComment:         "Transfers keep failing",
		domain.ColAppName:         "MobileBank",
		domain.ColPlatform:        "App Store",
		domain.ColSentiment:       "Negative",
		domain.ColStatus:          "In Progress",
		domain.ColAssignedTeam:    "Payments Team, Mobile Team",
		domain.ColIssueType:       "Bug, Performance",
		domain.ColKeywords:        "transfer, crash",
		domain.ColImpactScore:     "85%",
		domain.ColRetentionRisk:   "60%",
		domain.ColChurnPrediction: "90%",
		domain.ColUrgency:         "75%",
		domain.ColFeatureRequest:  "Dark mode",
	}

	r := analytics.Normalize(row)

	if r.ID != "r-17" || r.Name != "Ana" || r.AppName != "MobileBank" {
		t.Fatalf("identity fields: %+v", r)
	}
	if r.Rating != 4 {
		t.Fatalf("rating = %d, want 4", r.Rating)
	}
	if !r.DateParsed || r.Date.Format("2006-01-02") != "2024-05-16" {
		t.Fatalf("date: parsed=%v date=%v", r.DateParsed, r.Date)
	}
	if got, want := r.AssignedTeams, []string{"Payments Team", "Mobile Team"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("teams = %v, want %v", got, want)
	}
	if got, want := r.IssueTypes, []string{"Bug", "Performance"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("issues = %v, want %v", got, want)
	}
	if r.ImpactScore != 85 || r.RetentionRisk != 60 || r.ChurnPrediction != 90 || r.Urgency != 75 {
		t.Fatalf("percentages: %+v", r)
	}
	if !r.HasFeatureRequest() {
		t.Fatalf("expected feature request present")
	}
}

func TestNormalize_Fallbacks(t *testing.T) {
	r := analytics.Normalize(domain.RawRow{
		domain.ColRating:          "five stars!!",
		domain.ColDate:            "13/45/2024",
		domain.ColImpactScore:     "abc",
		domain.ColChurnPrediction: "120%",
		domain.ColRetentionRisk:   "-5",
		domain.ColFeatureRequest:  "None",
	})

	if r.Rating != 0 {
		t.Fatalf("unparsable rating = %d, want 0", r.Rating)
	}
	if r.DateParsed {
		t.Fatalf("13/45/2024 must be flagged unparsed")
	}
	if r.RawDate != "13/45/2024" {
		t.Fatalf("raw date not preserved: %q", r.RawDate)
	}
	if r.ImpactScore != 0 {
		t.Fatalf("non-numeric percent = %d, want 0", r.ImpactScore)
	}
	if r.ChurnPrediction != 100 {
		t.Fatalf("over-range percent = %d, want clamp 100", r.ChurnPrediction)
	}
	if r.RetentionRisk != 0 {
		t.Fatalf("negative percent = %d, want clamp 0", r.RetentionRisk)
	}
	if r.HasFeatureRequest() {
		t.Fatalf(`"None" feature request must read as absent`)
	}
}

func TestNormalize_Sentinels(t *testing.T) {
	r := analytics.Normalize(domain.RawRow{})

	if r.Status != domain.Unassigned {
		t.Fatalf("empty status = %q, want %q", r.Status, domain.Unassigned)
	}
	if got, want := r.AssignedTeams, []string{domain.Unassigned}; !reflect.DeepEqual(got, want) {
		t.Fatalf("empty teams = %v, want %v", got, want)
	}
	if got, want := r.IssueTypes, []string{domain.Unassigned}; !reflect.DeepEqual(got, want) {
		t.Fatalf("empty issues = %v, want %v", got, want)
	}
	if len(r.Keywords) != 0 {
		t.Fatalf("empty keywords = %v, want none", r.Keywords)
	}
}

func TestNormalize_DateEdgeCases(t *testing.T) {
	cases := []struct {
		in     string
		parsed bool
		iso    string
	}{
		{"5/16/2024", true, "2024-05-16"},
		{"12/1/2023", true, "2023-12-01"},
		{"", false, ""},
		{"2024-05-16", false, ""},
		{"5/16", false, ""},
		{"2/30/2024", false, ""},
	}
	for _, tc := range cases {
		r := analytics.Normalize(domain.RawRow{domain.ColDate: tc.in})
		if r.DateParsed != tc.parsed {
			t.Fatalf("%q: parsed=%v, want %v", tc.in, r.DateParsed, tc.parsed)
		}
		if tc.parsed && r.Date.Format("2006-01-02") != tc.iso {
			t.Fatalf("%q: date=%v, want %s", tc.in, r.Date, tc.iso)
		}
	}
}
