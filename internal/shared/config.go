package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the binaries read from the environment.
// A .env file in the working directory is loaded first when present,
// real environment variables winning over it.
type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MySQLDSN string

	RedisAddr string
	RedisPass string
	RedisDB   int

	// Source selects where review rows come from: "cos" pulls the live
	// CSV export, "mysql" reads the latest promoted snapshot, "file"
	// loads a local CSV/XLSX export.
	Source string

	COSEndpoint string
	COSBucket   string
	COSObject   string
	COSAPIKey   string
	COSRate     int

	LocalFile string

	IngestBatch   int
	IngestWorkers int

	CacheTTL time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:      env("APP_ENV", "dev"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9090"),

		MySQLDSN: env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviewpulse?parseTime=true"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASS", ""),
		RedisDB:   atoi(env("REDIS_DB", "0"), 0),

		Source: env("SOURCE", "cos"),

		COSEndpoint: env("COS_ENDPOINT", "https://s3.eu-de.cloud-object-storage.appdomain.cloud"),
		COSBucket:   env("COS_BUCKET", ""),
		COSObject:   env("COS_OBJECT", "comments.csv"),
		COSAPIKey:   env("COS_API_KEY", ""),
		COSRate:     atoi(env("COS_RATE", "5"), 5),

		LocalFile: env("LOCAL_FILE", ""),

		IngestBatch:   atoi(env("INGEST_BATCH", "200"), 200),
		IngestWorkers: atoi(env("INGEST_WORKERS", "4"), 4),

		CacheTTL: time.Duration(atoi(env("CACHE_TTL_SECONDS", "300"), 300)) * time.Second,
	}
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
