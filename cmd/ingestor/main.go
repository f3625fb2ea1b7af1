package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"reviewpulse/internal/adapters/objstore"
	"reviewpulse/internal/adapters/observability"
	redisad "reviewpulse/internal/adapters/redis"
	"reviewpulse/internal/app"
	"reviewpulse/internal/domain"
	"reviewpulse/internal/shared"
	mysqlrepo "reviewpulse/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("bucket", cfg.COSBucket).
		Str("object", cfg.COSObject).
		Int("workers", cfg.IngestWorkers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	client, err := objstore.New(cfg.COSEndpoint, cfg.COSBucket, cfg.COSObject, cfg.COSAPIKey, cfg.COSRate)
	if err != nil {
		log.Fatal().Err(err).Msg("object store client failed")
	}

	cache, err := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		// The snapshot still lands in MySQL; readers just serve the
		// stale cached rows until the TTL runs out.
		log.Warn().Err(err).Msg("redis unavailable, skipping cache invalidation")
		cache = nil
	}

	ing := app.NewIngestionService(client, repo, cacheOrNil(cache), cfg.IngestBatch, cfg.IngestWorkers)

	id, err := ing.IngestSnapshot(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("ingest failed")
	}

	// Keep a couple of days of history around for debugging.
	if err := repo.Prune(ctx, 48); err != nil {
		log.Warn().Err(err).Msg("prune failed")
	}

	log.Info().Str("snapshot", id).Msg("ingestion completed")
}

// cacheOrNil avoids handing a typed-nil *Cache to the interface field.
func cacheOrNil(c *redisad.Cache) domain.Cache {
	if c == nil {
		return nil
	}
	return c
}
