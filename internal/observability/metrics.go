// Package observability exposes Prometheus metrics for the planning pipeline.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/wander/internal/domain"
	"github.com/alexanderramin/wander/internal/llm"
)

const namespace = "wander"

// Metrics holds every collector on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	sourceFetches  *prometheus.CounterVec
	sourceRecords  *prometheus.CounterVec
	sourceDuration *prometheus.HistogramVec
	plans          *prometheus.CounterVec
	planDuration   prometheus.Histogram
	planCandidates prometheus.Histogram
	llmCalls       *prometheus.CounterVec
	llmLatency     *prometheus.HistogramVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics registers the collectors plus Go runtime and process metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetches_total",
			Help:      "Location source queries by source and outcome.",
		}, []string{"source", "outcome"}),
		sourceRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "records_total",
			Help:      "Raw records returned by each location source.",
		}, []string{"source"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of location source queries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
		}, []string{"source"}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "requests_total",
			Help:      "Plan requests by outcome.",
		}, []string{"outcome"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "duration_seconds",
			Help:      "End-to-end plan request latency.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		planCandidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "planner",
			Name:      "ranked_candidates",
			Help:      "Number of candidates surviving dedupe and budget filtering.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Completion calls by task and result.",
		}, []string{"task", "result"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "Completion call latency including retries.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9),
		}, []string{"task"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "API requests by route pattern, method and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "API request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sourceFetches, m.sourceRecords, m.sourceDuration,
		m.plans, m.planDuration, m.planCandidates,
		m.llmCalls, m.llmLatency,
		m.httpRequests, m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveSourceFetch records one source query made by the gatherer.
func (m *Metrics) ObserveSourceFetch(source domain.Source, outcome string, records int, d time.Duration) {
	m.sourceFetches.WithLabelValues(string(source), outcome).Inc()
	if records > 0 {
		m.sourceRecords.WithLabelValues(string(source)).Add(float64(records))
	}
	if d > 0 {
		m.sourceDuration.WithLabelValues(string(source)).Observe(d.Seconds())
	}
}

// ObservePlan records the outcome of one plan request.
func (m *Metrics) ObservePlan(outcome string, candidates int, d time.Duration) {
	m.plans.WithLabelValues(outcome).Inc()
	m.planDuration.Observe(d.Seconds())
	if candidates >= 0 {
		m.planCandidates.Observe(float64(candidates))
	}
}

// OnCallComplete makes Metrics usable as an llm.Observer.
func (m *Metrics) OnCallComplete(event llm.CallEvent) {
	result := "ok"
	if !event.Success {
		result = event.ErrorCode
		if result == "" {
			result = "error"
		}
	}
	m.llmCalls.WithLabelValues(string(event.Task), result).Inc()
	m.llmLatency.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

// ObserveHTTP records one served API request. route must be the matched
// pattern, never the raw path.
func (m *Metrics) ObserveHTTP(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
