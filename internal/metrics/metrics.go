// Package metrics exposes Prometheus collectors for the scraper.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luciengaly/football-scraping/internal/match"
)

const namespace = "fscraper"

// Metrics collects extraction, sink and HTTP metrics
type Metrics struct {
	registry *prometheus.Registry

	recordsAssembled prometheus.Counter
	assemblyDuration prometheus.Histogram
	diagnostics      *prometheus.CounterVec
	sinkWrites       *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		recordsAssembled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_assembled_total",
			Help:      "Match records assembled.",
		}),
		assemblyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Time spent turning one batch of text blocks into a record.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		diagnostics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Degraded fields by section and failure kind.",
		}, []string{"section", "kind"}),
		sinkWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_writes_total",
			Help:      "Record writes by sink and result.",
		}, []string{"sink", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.recordsAssembled,
		m.assemblyDuration,
		m.diagnostics,
		m.sinkWrites,
		m.httpRequests,
		m.httpDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAssembly records one assembled record and its diagnostics
func (m *Metrics) ObserveAssembly(elapsed time.Duration, diagnostics []match.Diagnostic) {
	m.recordsAssembled.Inc()
	m.assemblyDuration.Observe(elapsed.Seconds())
	for _, d := range diagnostics {
		m.diagnostics.WithLabelValues(d.Section, d.Kind).Inc()
	}
}

// ObserveSinkWrite records the result of one sink write
func (m *Metrics) ObserveSinkWrite(sink string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sinkWrites.WithLabelValues(sink, result).Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(route string, code string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
