// Package metrics documents the Prometheus metrics exported by the artworks
// client. Metrics are defined in their own packages (client, cache,
// ratelimit, selection, table) and registered with promauto; this package
// provides the HTTP handler that serves them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves every registered metric in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - artic_requests_total{status} (Counter): requests by HTTP status, "network_error" or "rate_limited"
//   - artic_request_duration_seconds (Histogram): request duration
//   - artic_errors_total{class} (Counter): errors by class (client, server, rate_limit, network, decode)
//
// Cache Metrics (pkg/cache):
//   - artic_cache_hits_total (Counter)
//   - artic_cache_misses_total (Counter)
//   - artic_cache_errors_total{operation} (Counter)
//
// Request Budget Metrics (pkg/ratelimit):
//   - artic_rate_limit_remaining (Gauge): requests left in the current minute
//   - artic_rate_limit_blocks_total (Counter): requests refused locally
//
// Selection Metrics (pkg/selection):
//   - artic_bulk_selections_total{outcome} (Counter): ok, error, noop
//   - artic_bulk_selection_pages (Histogram): pages fetched per run
//
// Page View Metrics (pkg/table):
//   - artic_page_loads_total{outcome} (Counter): ok, error
//   - artic_stale_pages_total (Counter): responses dropped after newer navigation
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(artic_cache_hits_total[5m]) /
//   (rate(artic_cache_hits_total[5m]) + rate(artic_cache_misses_total[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(artic_request_duration_seconds_bucket[5m]))
