package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const namespace = "reviewpulse"

var (
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	externalRequests *prometheus.CounterVec
	externalLatency  *prometheus.HistogramVec

	cacheEvents *prometheus.CounterVec

	snapshotRows prometheus.Gauge
)

// InitRegistry builds the process registry and all collectors. Call once
// at startup; the Observe helpers are no-ops until then.
func InitRegistry() *prometheus.Registry {
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served, by route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	externalRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_requests_total",
		Help:      "Upstream calls, by service, object and status.",
	}, []string{"service", "object", "status"})

	externalLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "external_request_duration_seconds",
		Help:      "Upstream call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"service", "object"})

	cacheEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_events_total",
		Help:      "Cache hits, misses and errors.",
	}, []string{"event"})

	snapshotRows = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "snapshot_rows",
		Help:      "Row count of the last ingested snapshot.",
	})

	registry.MustRegister(httpRequests, httpLatency, externalRequests, externalLatency, cacheEvents, snapshotRows)
	return registry
}

// MetricsHandler exposes the registry for scraping.
func MetricsHandler() http.Handler {
	if registry == nil {
		InitRegistry()
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Serve runs the metrics endpoint on its own listener. Blocks.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler())
	log.Info().Str("addr", addr).Msg("metrics listening")
	return http.ListenAndServe(addr, mux)
}

func ObserveHTTP(method, route string, status int, d time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveExternal(service, object string, status int, d time.Duration) {
	if externalRequests == nil {
		return
	}
	externalRequests.WithLabelValues(service, object, strconv.Itoa(status)).Inc()
	externalLatency.WithLabelValues(service, object).Observe(d.Seconds())
}

func ObserveCache(event string) {
	if cacheEvents == nil {
		return
	}
	cacheEvents.WithLabelValues(event).Inc()
}

func SetSnapshotRows(n int) {
	if snapshotRows == nil {
		return
	}
	snapshotRows.Set(float64(n))
}
