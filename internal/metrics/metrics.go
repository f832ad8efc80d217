// Package metrics provides Prometheus metrics for careerquest.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's collectors. A nil *Manager is valid and
// records nothing, so services can be built without metrics.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	roundsRecorded    *prometheus.CounterVec
	unknownGames      prometheus.Counter
	xpAwarded         *prometheus.CounterVec
	persistenceErrors *prometheus.CounterVec
	insightFallbacks  *prometheus.CounterVec
	insightLatency    prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry registers collectors on registry instead of a fresh one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// WithProcessCollectors adds the Go runtime and process collectors.
func WithProcessCollectors() Option {
	return func(m *Manager) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewManager creates a metrics manager on its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careerquest",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.roundsRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rounds_recorded_total",
		Help:      "Game rounds recorded, by game and outcome.",
	}, []string{"game", "outcome"})

	m.unknownGames = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "unknown_games_total",
		Help:      "Rounds whose game id was not in the game table.",
	})

	m.xpAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "xp_awarded_total",
		Help:      "XP credited to the ledger, by skill.",
	}, []string{"skill"})

	m.persistenceErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "persistence_errors_total",
		Help:      "Storage operations that failed, by operation.",
	}, []string{"op"})

	m.insightFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "insight_fallbacks_total",
		Help:      "Times the static insight replaced generated insights, by reason.",
	}, []string{"reason"})

	m.insightLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "insight_generation_seconds",
		Help:      "Latency of LLM insight generation.",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests, by route and status code.",
	}, []string{"route", "code"})

	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by route.",
		Buckets:   m.histogramBuckets,
	}, []string{"route"})
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// UnknownGameLabel replaces client-supplied game ids that are not in the
// game table, keeping the game label's cardinality bounded.
const UnknownGameLabel = "unknown"

// RoundRecorded counts a recorded round.
func (m *Manager) RoundRecorded(game, outcome string, known bool) {
	if m == nil {
		return
	}
	if !known {
		game = UnknownGameLabel
	}
	m.roundsRecorded.WithLabelValues(game, outcome).Inc()
	if !known {
		m.unknownGames.Inc()
	}
}

// XPAwarded adds the delta's XP to the per-skill counters.
func (m *Manager) XPAwarded(delta map[string]int) {
	if m == nil {
		return
	}
	for skill, xp := range delta {
		if xp > 0 {
			m.xpAwarded.WithLabelValues(skill).Add(float64(xp))
		}
	}
}

// PersistenceError counts a failed storage operation.
func (m *Manager) PersistenceError(op string) {
	if m == nil {
		return
	}
	m.persistenceErrors.WithLabelValues(op).Inc()
}

// InsightFallback counts a fallback to the static insight.
func (m *Manager) InsightFallback(reason string) {
	if m == nil {
		return
	}
	m.insightFallbacks.WithLabelValues(reason).Inc()
}

// ObserveInsightLatency records how long insight generation took.
func (m *Manager) ObserveInsightLatency(d time.Duration) {
	if m == nil {
		return
	}
	m.insightLatency.Observe(d.Seconds())
}

// ObserveHTTP records one served request.
func (m *Manager) ObserveHTTP(route, code string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
