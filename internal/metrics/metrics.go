// Package metrics defines the Prometheus collectors for the ranking service
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	AnalysesTotal        *prometheus.CounterVec
	StageDuration        *prometheus.HistogramVec
	DocumentsParsedTotal *prometheus.CounterVec
	SectionsRanked       prometheus.Histogram
	QueueDepth           prometheus.Gauge
}

// New creates all collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrank_analyses_total",
				Help: "Total analysis jobs by final status.",
			},
			[]string{"status"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docrank_stage_duration_seconds",
				Help:    "Analysis stage latency in seconds (parse, segment, rank, total).",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		DocumentsParsedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docrank_documents_parsed_total",
				Help: "Total documents parsed by result (ok, error).",
			},
			[]string{"result"},
		),
		SectionsRanked: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "docrank_sections_ranked",
				Help:    "Number of sections ranked per analysis.",
				Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
			},
		),
		QueueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "docrank_queue_depth",
				Help: "Number of analysis jobs waiting for a worker.",
			},
		),
	}

	m.Registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.AnalysesTotal,
		m.StageDuration,
		m.DocumentsParsedTotal,
		m.SectionsRanked,
		m.QueueDepth,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler for m's registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveStage records how long one analysis stage took.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveDocument counts one parsed document.
func (m *Metrics) ObserveDocument(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.DocumentsParsedTotal.WithLabelValues(result).Inc()
}

// ObserveAnalysis counts a finished job and its section count.
func (m *Metrics) ObserveAnalysis(status string, sections int) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(status).Inc()
	m.SectionsRanked.Observe(float64(sections))
}

// SetQueueDepth reports the current job queue length.
func (m *Metrics) SetQueueDepth(n int) {
	if m == nil {
		return
	}
	m.QueueDepth.Set(float64(n))
}
