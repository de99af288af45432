package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. Each instance owns its
// registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rejectedTotal   *prometheus.CounterVec
	projections     *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holdi_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "holdi_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holdi_http_rejected_total",
			Help: "Total number of rejected HTTP requests",
		}, []string{"reason"}),
		projections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "holdi_projections_total",
			Help: "Total number of projections computed by investor profile",
		}, []string{"profile", "custom"}),
	}
	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.rejectedTotal,
		m.projections,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeProjection(profile string, custom bool) {
	label := "false"
	if custom {
		label = "true"
	}
	m.projections.WithLabelValues(profile, label).Inc()
}
