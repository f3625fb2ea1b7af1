package domain

import (
	"context"
	"errors"
)

// ErrSourceUnavailable is the only failure this service propagates: the
// raw-row fetch failed or returned an unusable shape. Everything past
// normalization is total.
var ErrSourceUnavailable = errors.New("record source unavailable")

// RecordSource yields one immutable snapshot of the raw review table.
type RecordSource interface {
	Fetch(ctx context.Context) ([]RawRow, error)
}

// SnapshotStore persists raw snapshots so the API can serve without
// re-hitting object storage. Rows stay raw; normalization happens in
// one place, on read. A snapshot becomes visible to readers only once
// promoted, so half-written ingests never serve.
type SnapshotStore interface {
	CreateSnapshot(ctx context.Context, snapshotID string) error
	// InsertRows persists one batch at the given source offset, so
	// concurrent batches reassemble in source order on read.
	InsertRows(ctx context.Context, snapshotID string, offset int, rows []RawRow) error
	PromoteSnapshot(ctx context.Context, snapshotID string) error
	LatestSnapshot(ctx context.Context) ([]RawRow, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// PageQuery selects one page of a listing. Page is 1-based.
type PageQuery struct {
	Page     int
	PageSize int
}

// ReviewsQuery carries the filter parameters of the review table view.
// Empty fields match everything; the Unassigned/None sentinels match
// records whose cell is empty.
type ReviewsQuery struct {
	Text      string
	App       string
	Platform  string
	Sentiment string
	Status    string
	Team      string
	PageQuery
}

// ReviewsPage is one page of filtered records plus paging metadata.
type ReviewsPage struct {
	Items      []ReviewRecord `json:"items"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalItems int            `json:"totalItems"`
}
