// Package metrics provides Prometheus metrics for the planning service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the planning service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Planning outcomes
	plansGenerated prometheus.Counter
	planFailures   *prometheus.CounterVec // by stage
	planWarnings   prometheus.Counter
	planDuration   prometheus.Histogram

	// Text generation
	generationLatency prometheus.Histogram
	parseRepairs      prometheus.Counter
	parseFailures     prometheus.Counter

	// Federation data fetches
	rankingPagesFetched prometheus.Counter
	rankingPageErrors   prometheus.Counter
	entrantLookups      prometheus.Counter
	entrantLookupErrors prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager backed by a custom registry so default Go
// collectors stay out of the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squashplan",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.plansGenerated = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "plans_generated_total",
		Help: "Total number of tournament plans returned to callers.",
	})
	m.planFailures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "plan_failures_total",
		Help: "Total fatal planning failures by pipeline stage.",
	}, []string{"stage"})
	m.planWarnings = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "plan_warnings_total",
		Help: "Total non-fatal consistency warnings attached to plans.",
	})
	m.planDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "plan_duration_seconds",
		Help:    "End-to-end planning request duration.",
		Buckets: m.histogramBuckets,
	})

	m.generationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "generation_latency_seconds",
		Help:    "Latency of the external text-generation call.",
		Buckets: m.histogramBuckets,
	})
	m.parseRepairs = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "parse_repairs_total",
		Help: "Generated responses that needed structural repair before parsing.",
	})
	m.parseFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "parse_failures_total",
		Help: "Generated responses unusable after all repair attempts.",
	})

	m.rankingPagesFetched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "ranking_pages_fetched_total",
		Help: "Ranking listing pages fetched from the federation API.",
	})
	m.rankingPageErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "ranking_page_errors_total",
		Help: "Ranking listing pages that failed to fetch.",
	})
	m.entrantLookups = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "entrant_lookups_total",
		Help: "Authoritative division entrant lookups attempted.",
	})
	m.entrantLookupErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "entrant_lookup_errors_total",
		Help: "Entrant lookups that fell back to the heuristic estimate.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name: "requests_total",
		Help: "HTTP requests by endpoint, method, and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "http",
		Name:    "request_duration_seconds",
		Help:    "HTTP request duration by endpoint and method.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// Handler exposes the manager's registry for scraping.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level recording helpers against the global manager.

// RecordPlanGenerated increments the completed-plan counter.
func RecordPlanGenerated() { globalManager.plansGenerated.Inc() }

// RecordPlanFailure increments the failure counter for a pipeline stage.
func RecordPlanFailure(stage string) { globalManager.planFailures.WithLabelValues(stage).Inc() }

// RecordPlanWarnings adds the number of consistency warnings a plan carried.
func RecordPlanWarnings(n int) { globalManager.planWarnings.Add(float64(n)) }

// RecordPlanDuration observes end-to-end planning duration in seconds.
func RecordPlanDuration(seconds float64) { globalManager.planDuration.Observe(seconds) }

// RecordGenerationLatency observes one text-generation call in seconds.
func RecordGenerationLatency(seconds float64) { globalManager.generationLatency.Observe(seconds) }

// RecordParseRepair increments the counter of plans that needed parse repair.
func RecordParseRepair() { globalManager.parseRepairs.Inc() }

// RecordParseFailure increments the counter of unparseable generation output.
func RecordParseFailure() { globalManager.parseFailures.Inc() }

// RecordRankingPageFetched increments the successful listing-page counter.
func RecordRankingPageFetched() { globalManager.rankingPagesFetched.Inc() }

// RecordRankingPageError increments the failed listing-page counter.
func RecordRankingPageError() { globalManager.rankingPageErrors.Inc() }

// RecordEntrantLookup increments the successful entrant-lookup counter.
func RecordEntrantLookup() { globalManager.entrantLookups.Inc() }

// RecordEntrantLookupError increments the failed entrant-lookup counter.
func RecordEntrantLookupError() { globalManager.entrantLookupErrors.Inc() }

// RecordHTTPRequest counts one HTTP request by endpoint, method, and status.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one request's duration in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// Handler exposes the global registry for scraping.
func Handler() http.Handler { return globalManager.Handler() }
