package metrics

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instrumentation for the aggregation pipeline.
type Metrics struct {
	registry *prometheus.Registry

	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	providerCalls  *prometheus.CounterVec
	providerErrors *prometheus.CounterVec
	eventsOut      *prometheus.CounterVec
}

// New creates and registers the metric set on a private registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disasterhub_cache_hits_total",
		Help: "Aggregation requests answered from the cache.",
	}, []string{"endpoint"})
	m.cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disasterhub_cache_misses_total",
		Help: "Aggregation requests that ran the provider fan-out.",
	}, []string{"endpoint"})
	m.providerCalls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disasterhub_provider_calls_total",
		Help: "Outbound provider invocations.",
	}, []string{"provider"})
	m.providerErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disasterhub_provider_errors_total",
		Help: "Provider invocations that failed or were degraded to a sentinel.",
	}, []string{"provider"})
	m.eventsOut = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "disasterhub_events_published_total",
		Help: "Change events published to websocket subscribers.",
	}, []string{"topic"})

	m.registry.MustRegister(m.cacheHits, m.cacheMisses, m.providerCalls, m.providerErrors, m.eventsOut)
	return m
}

// All recorders are nil-safe so tests can pass a nil *Metrics.

// CacheHit records a cache hit for the named endpoint.
func (m *Metrics) CacheHit(endpoint string) {
	if m != nil {
		m.cacheHits.WithLabelValues(endpoint).Inc()
	}
}

// CacheMiss records a cache miss for the named endpoint.
func (m *Metrics) CacheMiss(endpoint string) {
	if m != nil {
		m.cacheMisses.WithLabelValues(endpoint).Inc()
	}
}

// ProviderCall records one outbound call to the named provider.
func (m *Metrics) ProviderCall(provider string) {
	if m != nil {
		m.providerCalls.WithLabelValues(provider).Inc()
	}
}

// ProviderError records a failed or degraded provider call.
func (m *Metrics) ProviderError(provider string) {
	if m != nil {
		m.providerErrors.WithLabelValues(provider).Inc()
	}
}

// EventPublished records one published change event.
func (m *Metrics) EventPublished(topic string) {
	if m != nil {
		m.eventsOut.WithLabelValues(topic).Inc()
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
