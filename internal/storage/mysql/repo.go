package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reviewpulse/internal/domain"
)

// ErrNoSnapshot is returned when no promoted snapshot exists yet.
var ErrNoSnapshot = errors.New("mysql: no promoted snapshot")

// Repo persists raw review snapshots. It implements both
// domain.SnapshotStore (ingest side) and domain.RecordSource (serving
// the latest promoted snapshot as the review table).
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) CreateSnapshot(ctx context.Context, snapshotID string) error {
	_, err := r.db.ExecContext(ctx, insertSnapshotSQL, snapshotID)
	return err
}

func (r *Repo) InsertRows(ctx context.Context, snapshotID string, offset int, rows []domain.RawRow) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([]string, 0, len(rows))
	args := make([]any, 0, len(rows)*3)
	for i, row := range rows {
		doc, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal row %d: %w", offset+i, err)
		}
		values = append(values, "(?,?,?)")
		args = append(args, snapshotID, offset+i, string(doc))
	}
	_, err := r.db.ExecContext(ctx, insertRowsPrefix+strings.Join(values, ","), args...)
	return err
}

func (r *Repo) PromoteSnapshot(ctx context.Context, snapshotID string) error {
	res, err := r.db.ExecContext(ctx, promoteSnapshotSQL, snapshotID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("mysql: snapshot %s does not exist", snapshotID)
	}
	return nil
}

// LatestSnapshot reads the newest promoted snapshot's rows in source
// order.
func (r *Repo) LatestSnapshot(ctx context.Context) ([]domain.RawRow, error) {
	rows, err := r.db.QueryContext(ctx, latestRowsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RawRow
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var row domain.RawRow
		if err := json.Unmarshal(doc, &row); err != nil {
			return nil, fmt.Errorf("corrupt snapshot row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNoSnapshot
	}
	return out, nil
}

// Fetch makes the latest promoted snapshot usable as a RecordSource.
func (r *Repo) Fetch(ctx context.Context) ([]domain.RawRow, error) {
	return r.LatestSnapshot(ctx)
}

// Prune deletes promoted snapshots older than keepHours, always keeping
// the newest one.
func (r *Repo) Prune(ctx context.Context, keepHours int) error {
	_, err := r.db.ExecContext(ctx, pruneSnapshotsSQL, keepHours)
	return err
}
