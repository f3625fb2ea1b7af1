package domain

// Read models assembled by the query service. All are recomputed per
// request from the current snapshot and discarded after rendering.

// FilterOptions lists the distinct values the dashboard offers in its
// selectors, in first-appearance order.
type FilterOptions struct {
	Teams     []string `json:"teams"`
	Apps      []string `json:"apps"`
	Platforms []string `json:"platforms"`
}

// TeamTasks pairs a team with its task count for the distribution
// chart. Multi-team records count once per team.
type TeamTasks struct {
	Team  string `json:"team"`
	Tasks int    `json:"tasks"`
}

// TeamQuery selects the team dashboard's scope. An empty Team means the
// aggregate "all teams" view.
type TeamQuery struct {
	Team     string
	App      string
	Platform string
}

// TeamDashboard is the team performance view: the selected scope's
// metrics, the per-team task distribution, and the advice list.
type TeamDashboard struct {
	Team            string      `json:"team"`
	Metrics         TeamMetrics `json:"metrics"`
	TasksPerTeam    []TeamTasks `json:"tasksPerTeam"`
	Recommendations []string    `json:"recommendations"`
}

// SentimentOverview is the satisfaction view: the typed sentiment split
// plus repeat commenters.
type SentimentOverview struct {
	Summary            SentimentSummary `json:"summary"`
	FrequentCommenters []CommenterCount `json:"frequentCommenters"`
}

// CategoryCount summarizes one insights category for the tab strip.
type CategoryCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// SnapshotOverview is the landing view's headline numbers over a
// recency window.
type SnapshotOverview struct {
	TotalComments int `json:"totalComments"`
	Positive      int `json:"positive"`
	Negative      int `json:"negative"`
}
