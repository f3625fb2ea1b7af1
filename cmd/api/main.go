package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "reviewpulse/internal/adapters/http_server"
	"reviewpulse/internal/adapters/localfile"
	"reviewpulse/internal/adapters/objstore"
	"reviewpulse/internal/adapters/observability"
	redisad "reviewpulse/internal/adapters/redis"
	"reviewpulse/internal/app"
	"reviewpulse/internal/domain"
	"reviewpulse/internal/shared"
	mysqlrepo "reviewpulse/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.InitRegistry()

	// metrics sidecar for scrapers that can't reach the API mux
	go func() {
		if err := observability.Serve(cfg.MetricsAddr); err != nil {
			log.Error().Err(err).Msg("metrics listener failed")
		}
	}()

	src := newSource(cfg)

	cache, err := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	q := app.NewQueryService(src, cache, cfg.CacheTTL)

	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler())
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Str("source", cfg.Source).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// newSource picks the review-table source the config asks for.
func newSource(cfg shared.Config) domain.RecordSource {
	switch cfg.Source {
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db)

	case "file":
		loader, err := localfile.New(cfg.LocalFile)
		if err != nil {
			log.Fatal().Err(err).Msg("local file source failed")
		}
		return loader

	default:
		client, err := objstore.New(cfg.COSEndpoint, cfg.COSBucket, cfg.COSObject, cfg.COSAPIKey, cfg.COSRate)
		if err != nil {
			log.Fatal().Err(err).Msg("object store client failed")
		}
		return client
	}
}
