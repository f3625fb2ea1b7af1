package domain

// TeamMetrics is the derived summary for one group key (team, app or
// platform bucket). Recomputed per query, never stored.
type TeamMetrics struct {
	TotalTasks    int `json:"totalTasks"`
	OpenTasks     int `json:"openTasks"`
	ClosedTasks   int `json:"closedTasks"`
	CriticalTasks int `json:"criticalTasks"`

	// Rounded integer means over every record in the bucket, including
	// records whose percentage cell failed to parse and defaulted to 0.
	AverageImpact        int `json:"averageImpact"`
	AverageRetentionRisk int `json:"averageRetentionRisk"`

	StatusCounts    map[string]int `json:"statusCounts"`
	SentimentCounts map[string]int `json:"sentimentCounts"`
	IssueTypeCounts map[string]int `json:"issueTypeCounts"`
}

// SentimentSummary is the typed three-way sentiment split over a whole
// snapshot. Unrecognized sentiment values count as Neutral here.
type SentimentSummary struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// TermWeight is one word-cloud entry: raw frequency plus the affine
// rescale handed to the renderer.
type TermWeight struct {
	Term   string `json:"term"`
	Count  int    `json:"count"`
	Weight int    `json:"weight"`
}

// CommenterCount pairs a reviewer name with how many reviews they left.
type CommenterCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
