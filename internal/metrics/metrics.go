// Package metrics exposes Prometheus counters for the notes pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus collectors for the Lectio server.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        prometheus.Counter
	errorsTotal          prometheus.Counter
	notesProcessedTotal  prometheus.Counter
	processFailuresTotal prometheus.Counter
	exportsServedTotal   *prometheus.CounterVec
	processDuration      prometheus.Histogram
}

// New creates and registers the server's Prometheus collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lectio_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lectio_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	notesProcessedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lectio_notes_processed_total",
		Help: "Total number of videos successfully synthesized into notes",
	})
	processFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lectio_process_failures_total",
		Help: "Total number of synthesis runs that failed",
	})
	exportsServedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lectio_exports_served_total",
		Help: "Total number of export downloads served, by format",
	}, []string{"format"})
	processDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lectio_process_duration_seconds",
		Help:    "Wall time of full synthesis runs",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		notesProcessedTotal,
		processFailuresTotal,
		exportsServedTotal,
		processDuration,
	)

	return &Metrics{
		registry:             registry,
		requestsTotal:        requestsTotal,
		errorsTotal:          errorsTotal,
		notesProcessedTotal:  notesProcessedTotal,
		processFailuresTotal: processFailuresTotal,
		exportsServedTotal:   exportsServedTotal,
		processDuration:      processDuration,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() { m.requestsTotal.Inc() }

// IncErrors increments the error response counter.
func (m *Metrics) IncErrors() { m.errorsTotal.Inc() }

// IncNotesProcessed increments the successful synthesis counter.
func (m *Metrics) IncNotesProcessed() { m.notesProcessedTotal.Inc() }

// IncProcessFailures increments the failed synthesis counter.
func (m *Metrics) IncProcessFailures() { m.processFailuresTotal.Inc() }

// IncExportsServed increments the download counter for a format.
func (m *Metrics) IncExportsServed(format string) {
	m.exportsServedTotal.WithLabelValues(format).Inc()
}

// ObserveProcessDuration records the wall time of one synthesis run.
func (m *Metrics) ObserveProcessDuration(d time.Duration) {
	m.processDuration.Observe(d.Seconds())
}

// Handler returns an http.Handler that serves the metrics scrape endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
