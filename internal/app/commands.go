package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"reviewpulse/internal/domain"
)

// IngestionService pulls the review table from the upstream source and
// replaces the persisted snapshot. Rows insert in bounded-concurrency
// batches under a fresh snapshot ID; the snapshot promotes only after
// every batch landed, so readers never see a half-written table.
type IngestionService struct {
	source    domain.RecordSource
	store     domain.SnapshotStore
	cache     domain.Cache
	batchSize int
	workers   int
}

func NewIngestionService(src domain.RecordSource, store domain.SnapshotStore, cache domain.Cache, batchSize, workers int) *IngestionService {
	if batchSize <= 0 {
		batchSize = 200
	}
	if workers <= 0 {
		workers = 4
	}
	return &IngestionService{source: src, store: store, cache: cache, batchSize: batchSize, workers: workers}
}

// IngestSnapshot runs one full fetch-and-replace cycle and returns the
// new snapshot ID.
func (s *IngestionService) IngestSnapshot(ctx context.Context) (string, error) {
	rows, err := s.source.Fetch(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch review table: %w", err)
	}

	id := uuid.NewString()
	log.Info().Str("snapshot", id).Int("rows", len(rows)).Msg("ingest starting")

	if err := s.store.CreateSnapshot(ctx, id); err != nil {
		return "", fmt.Errorf("create snapshot %s: %w", id, err)
	}

	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[start:end]

		// acquire before launching; release inside the goroutine
		if err := sem.Acquire(ctx, 1); err != nil {
			return "", err
		}
		wg.Add(1)
		go func(offset int, batch []domain.RawRow) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.store.InsertRows(ctx, id, offset, batch); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(start, batch)
	}
	wg.Wait()

	if firstErr != nil {
		return "", fmt.Errorf("insert snapshot rows: %w", firstErr)
	}

	if err := s.store.PromoteSnapshot(ctx, id); err != nil {
		return "", fmt.Errorf("promote snapshot %s: %w", id, err)
	}

	// drop the cached rows so the API picks up the new snapshot
	if s.cache != nil {
		_ = s.cache.Del(ctx, snapshotKey)
	}

	log.Info().Str("snapshot", id).Int("rows", len(rows)).Msg("ingest completed")
	return id, nil
}
