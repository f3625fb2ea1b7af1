package analytics

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"reviewpulse/internal/domain"
)

var ratingRe = regexp.MustCompile(`Rated (\d+) star`)

// Normalize turns one raw row into a typed ReviewRecord. It never
// fails: every parse has a fallback (rating 0, percentage 0, unparsed
// date kept as raw string, Unassigned for empty multi-value cells).
// Unknown columns are ignored.
func Normalize(row domain.RawRow) domain.ReviewRecord {
	r := domain.ReviewRecord{
		ID:       row[domain.ColID],
		Name:     row[domain.ColName],
		Comment:  row[domain.ColComment],
		AppName:  row[domain.ColAppName],
		Platform: row[domain.ColPlatform],
		Language: row[domain.ColLanguage],

		Rating: parseRating(row[domain.ColRating]),

		Sentiment: row[domain.ColSentiment],
		Status:    row[domain.ColStatus],

		AssignedTeams: splitMulti(row[domain.ColAssignedTeam], domain.Unassigned),
		IssueTypes:    splitMulti(row[domain.ColIssueType], domain.Unassigned),
		Keywords:      splitKeywords(row[domain.ColKeywords]),

		ImpactScore:     parsePercent(row[domain.ColImpactScore]),
		RetentionRisk:   parsePercent(row[domain.ColRetentionRisk]),
		ChurnPrediction: parsePercent(row[domain.ColChurnPrediction]),
		Urgency:         parsePercent(row[domain.ColUrgency]),

		FeatureRequest: row[domain.ColFeatureRequest],

		Emotion:            row[domain.ColEmotion],
		UserPsychology:     row[domain.ColUserPsychology],
		LanguageAccuracy:   row[domain.ColLanguageAccuracy],
		AIReply:            row[domain.ColAIReply],
		AIResolution:       row[domain.ColAIResolution],
		DeveloperReply:     row[domain.ColDeveloperReply],
		DeveloperReplyDate: row[domain.ColDeveloperReplyDate],

		SecurityConcern:      row[domain.ColSecurityConcern],
		LegalRisk:            row[domain.ColLegalRisk],
		HighValueCustomer:    row[domain.ColHighValueCustomer],
		CompetitorMention:    row[domain.ColCompetitorMention],
		BranchMention:        row[domain.ColBranchMention],
		MarketingOpportunity: row[domain.ColMarketingOpportunity],
		OnboardingExperience: row[domain.ColOnboarding],
		UpdateImpact:         row[domain.ColUpdateImpact],
	}

	if r.Status == "" {
		r.Status = domain.Unassigned
	}

	r.RawDate = row[domain.ColDate]
	if t, ok := parseDate(r.RawDate); ok {
		r.Date = t
		r.DateParsed = true
	}

	return r
}

// NormalizeAll maps a whole fetched snapshot, preserving source order.
func NormalizeAll(rows []domain.RawRow) []domain.ReviewRecord {
	out := make([]domain.ReviewRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, Normalize(row))
	}
	return out
}

// parseRating extracts N from "Rated N star(s) out of five".
func parseRating(s string) int {
	m := ratingRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// parseDate handles the export's M/D/YYYY format by reassembling it as
// YYYY-MM-DD before handing off to the time parser. Anything else is
// reported unparsed, never an error.
func parseDate(s string) (time.Time, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	iso := parts[2] + "-" + pad2(parts[0]) + "-" + pad2(parts[1])
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// parsePercent strips a trailing "%" and integer-parses, clamping the
// result to [0,100]. Non-numeric input becomes 0.
func parsePercent(s string) int {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// splitMulti splits a ", "-delimited cell, trimming tokens and dropping
// empties. An empty result collapses to the field's sentinel.
func splitMulti(s, sentinel string) []string {
	out := splitTrim(s)
	if len(out) == 0 {
		return []string{sentinel}
	}
	return out
}

// splitKeywords is splitMulti without a sentinel: no keywords is fine.
func splitKeywords(s string) []string {
	return splitTrim(s)
}

func splitTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if t := strings.TrimSpace(tok); t != "" {
			out = append(out, t)
		}
	}
	return out
}
