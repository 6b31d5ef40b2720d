package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	catalogRefreshesTotal *prometheus.CounterVec
	catalogProblemsCached prometheus.Gauge
	submissionsTotal      *prometheus.CounterVec
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		catalogRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Catalog source fetches per refresh cycle, by source and outcome.",
		}, []string{"source", "outcome"})

		catalogProblemsCached = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_problems_cached",
			Help: "Number of problems held in the current catalog snapshot.",
		})

		submissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "submissions_total",
			Help: "Judged submissions by verdict and language.",
		}, []string{"status", "language"})

		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for HTTP requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		prometheus.MustRegister(
			catalogRefreshesTotal,
			catalogProblemsCached,
			submissionsTotal,
			httpRequestsTotal,
			httpLatencySeconds,
		)
	})
}

// CatalogRefreshes exposes the per-source refresh counter.
func CatalogRefreshes() *prometheus.CounterVec {
	RegisterMetrics()
	return catalogRefreshesTotal
}

// CatalogProblems exposes the cached problem gauge.
func CatalogProblems() prometheus.Gauge {
	RegisterMetrics()
	return catalogProblemsCached
}

// Submissions exposes the judged submission counter.
func Submissions() *prometheus.CounterVec {
	RegisterMetrics()
	return submissionsTotal
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}
