package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartlearn"

// Outcome labels for downstream calls
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the service collectors on a dedicated registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	downstreamCalls   *prometheus.CounterVec
	downstreamLatency *prometheus.HistogramVec

	promptsRendered *prometheus.CounterVec
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method/route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		downstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "downstream_calls_total",
			Help:      "External service calls by op/service/outcome.",
		}, []string{"op", "service", "outcome"}),
		downstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "downstream_call_duration_seconds",
			Help:      "External service call latency by op/service.",
			// generation calls routinely take tens of seconds
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"op", "service"}),
		promptsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prompts_rendered_total",
			Help:      "Prompts rendered by activity.",
		}, []string{"activity"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.downstreamCalls,
		m.downstreamLatency,
		m.promptsRendered,
	)

	return m
}

// Registry exposes the underlying registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the exposition format for this registry
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

// ObserveDownstream records one call to an external service
func (m *Metrics) ObserveDownstream(op, service string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	if service == "" {
		service = "unknown"
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.downstreamCalls.WithLabelValues(op, service, outcome).Inc()
	m.downstreamLatency.WithLabelValues(op, service).Observe(dur.Seconds())
}

func (m *Metrics) PromptRendered(activity string) {
	if m == nil {
		return
	}
	m.promptsRendered.WithLabelValues(activity).Inc()
}
