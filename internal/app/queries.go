package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"reviewpulse/internal/analytics"
	"reviewpulse/internal/domain"
)

const snapshotKey = "snapshot:rows"

// QueryService serves every read view. It fetches the raw snapshot
// through the record source with a cache-aside on the raw rows, then
// recomputes each view from scratch; aggregates themselves are never
// cached, recomputation being cheap next to the fetch.
type QueryService struct {
	source   domain.RecordSource
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(src domain.RecordSource, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{source: src, cache: c, cacheTTL: ttl}
}

// Snapshot returns the normalized records of the current snapshot.
// A source failure is the only error this service ever surfaces.
func (s *QueryService) Snapshot(ctx context.Context) ([]domain.ReviewRecord, error) {
	var rows []domain.RawRow
	if ok, _ := s.cache.Get(ctx, snapshotKey, &rows); ok {
		return analytics.NormalizeAll(rows), nil
	}

	rows, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceUnavailable, err)
	}

	// size guard: don't cache pathological snapshots
	if b, _ := json.Marshal(rows); len(b) < 8_000_000 {
		_ = s.cache.Set(ctx, snapshotKey, rows, int(s.cacheTTL.Seconds()))
	}
	return analytics.NormalizeAll(rows), nil
}

// FilterOptions lists the selector values the dashboard offers.
func (s *QueryService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return domain.FilterOptions{
		Teams:     analytics.DistinctTeams(records),
		Apps:      analytics.DistinctApps(records),
		Platforms: analytics.DistinctPlatforms(records),
	}, nil
}

// TeamDashboard builds the team performance view. An empty q.Team means
// the aggregate scope: combined metrics over the filtered records and
// the fixed all-teams advice set.
func (s *QueryService) TeamDashboard(ctx context.Context, q domain.TeamQuery) (domain.TeamDashboard, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.TeamDashboard{}, err
	}

	scoped := analytics.Filter(records,
		analytics.CategoricalFilter(q.App, func(r domain.ReviewRecord) string { return r.AppName }),
		analytics.CategoricalFilter(q.Platform, func(r domain.ReviewRecord) string { return r.Platform }),
	)

	groups := analytics.GroupBy(scoped, analytics.ByTeam)
	tasks := make([]domain.TeamTasks, 0, groups.Len())
	for _, team := range groups.Keys() {
		tasks = append(tasks, domain.TeamTasks{Team: team, Tasks: len(groups.Bucket(team))})
	}

	dash := domain.TeamDashboard{Team: q.Team, TasksPerTeam: tasks}
	if q.Team == "" {
		dash.Metrics = analytics.Aggregate(scoped)
		dash.Recommendations = analytics.RecommendAllTeams()
		return dash, nil
	}

	dash.Metrics = analytics.Aggregate(groups.Bucket(q.Team))
	dash.Recommendations = analytics.Recommend(dash.Metrics)
	return dash, nil
}

// SearchReviews applies the table view's ANDed filters and paginates.
func (s *QueryService) SearchReviews(ctx context.Context, q domain.ReviewsQuery) (domain.ReviewsPage, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}

	matched := analytics.Filter(records,
		analytics.TextFilter(q.Text),
		analytics.CategoricalFilter(q.App, func(r domain.ReviewRecord) string { return r.AppName }),
		analytics.CategoricalFilter(q.Platform, func(r domain.ReviewRecord) string { return r.Platform }),
		analytics.CategoricalFilter(q.Sentiment, func(r domain.ReviewRecord) string { return r.Sentiment }),
		analytics.CategoricalFilter(q.Status, func(r domain.ReviewRecord) string { return r.Status }),
		analytics.TeamFilter(q.Team),
	)
	return page(matched, q.PageQuery), nil
}

// RecentReviews is the newest-first listing; unparsed dates land last.
func (s *QueryService) RecentReviews(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return page(analytics.SortByDateDesc(records), pg), nil
}

// HighRiskReviews keeps records above the high-churn threshold, in
// source order.
func (s *QueryService) HighRiskReviews(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	risky := analytics.Filter(records, analytics.ChurnRiskFilter(domain.HighChurnThreshold))
	return page(risky, pg), nil
}

// FeatureRequests lists records carrying a real feature request.
func (s *QueryService) FeatureRequests(ctx context.Context, pg domain.PageQuery) (domain.ReviewsPage, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	return page(analytics.Filter(records, analytics.HasFeatureRequest()), pg), nil
}

// Resolutions lists AI-suggested resolutions, optionally per team.
func (s *QueryService) Resolutions(ctx context.Context, team string, pg domain.PageQuery) (domain.ReviewsPage, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	matched := analytics.Filter(records, analytics.TeamFilter(team), analytics.HasResolution())
	return page(matched, pg), nil
}

// SentimentOverview is the satisfaction view.
func (s *QueryService) SentimentOverview(ctx context.Context) (domain.SentimentOverview, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.SentimentOverview{}, err
	}
	return domain.SentimentOverview{
		Summary:            analytics.SummarizeSentiment(records),
		FrequentCommenters: analytics.FrequentCommenters(records),
	}, nil
}

// Keywords hands the term-weight list to the cloud renderer.
func (s *QueryService) Keywords(ctx context.Context) ([]domain.TermWeight, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ExtractKeywords(records), nil
}

// InsightCategories summarizes the fixed signal categories.
func (s *QueryService) InsightCategories(ctx context.Context) ([]domain.CategoryCount, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	buckets := analytics.CategorizeSignals(records)
	out := make([]domain.CategoryCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.CategoryCount{Key: b.Key, Label: b.Label, Count: len(b.Records)})
	}
	return out, nil
}

// CategoryReviews pages through one signal category. The bool reports
// whether the key names a known category.
func (s *QueryService) CategoryReviews(ctx context.Context, key string, pg domain.PageQuery) (domain.ReviewsPage, bool, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.ReviewsPage{}, false, err
	}
	for _, b := range analytics.CategorizeSignals(records) {
		if b.Key == key {
			return page(b.Records, pg), true, nil
		}
	}
	return domain.ReviewsPage{}, false, nil
}

// Overview computes the landing view's headline numbers for records
// dated within the window; records with unparsed dates are excluded.
func (s *QueryService) Overview(ctx context.Context, since time.Time, app, platform string) (domain.SnapshotOverview, error) {
	records, err := s.Snapshot(ctx)
	if err != nil {
		return domain.SnapshotOverview{}, err
	}
	windowed := analytics.Filter(records,
		analytics.SinceFilter(since),
		analytics.CategoricalFilter(app, func(r domain.ReviewRecord) string { return r.AppName }),
		analytics.CategoricalFilter(platform, func(r domain.ReviewRecord) string { return r.Platform }),
	)
	sum := analytics.SummarizeSentiment(windowed)
	return domain.SnapshotOverview{
		TotalComments: len(windowed),
		Positive:      sum.Positive,
		Negative:      sum.Negative,
	}, nil
}

func page(records []domain.ReviewRecord, pg domain.PageQuery) domain.ReviewsPage {
	items := analytics.Paginate(records, pg.Page, pg.PageSize)
	// never serialize a null items array
	if items == nil {
		items = []domain.ReviewRecord{}
	}
	return domain.ReviewsPage{
		Items:      items,
		Page:       pg.Page,
		TotalPages: analytics.TotalPages(records, pg.PageSize),
		TotalItems: len(records),
	}
}
