package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fantasy_sync"

// Metrics holds the collectors used across the sync pipeline. The zero value
// is not usable; a nil *Metrics is, and records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	cacheLookups  *prometheus.CounterVec
	rateLimitWait *prometheus.HistogramVec
	leagueSyncs   *prometheus.CounterVec
	syncDuration  *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Outbound provider API requests by outcome.",
		}, []string{"provider", "outcome"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Provider response cache lookups.",
		}, []string{"provider", "resource", "result"}),
		rateLimitWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rate_limit_wait_seconds",
			Help:      "Time spent waiting for the per-client rate limiter.",
			Buckets:   []float64{0, .05, .1, .25, .5, 1, 2, 5},
		}, []string{"provider"}),
		leagueSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "league_syncs_total",
			Help:      "League sync attempts by result.",
		}, []string{"provider", "result"}),
		syncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "user_sync_duration_seconds",
			Help:      "Wall time of a full multi-provider user sync.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.cacheLookups,
		m.rateLimitWait,
		m.leagueSyncs,
		m.syncDuration,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(provider, outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveCache(provider, resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(provider, resource, result).Inc()
}

func (m *Metrics) ObserveRateLimitWait(provider string, wait time.Duration) {
	if m == nil {
		return
	}
	m.rateLimitWait.WithLabelValues(provider).Observe(wait.Seconds())
}

func (m *Metrics) ObserveLeagueSync(provider string, success bool) {
	if m == nil {
		return
	}
	m.leagueSyncs.WithLabelValues(provider, resultLabel(success)).Inc()
}

func (m *Metrics) ObserveUserSync(success bool, took time.Duration) {
	if m == nil {
		return
	}
	m.syncDuration.WithLabelValues(resultLabel(success)).Observe(took.Seconds())
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
