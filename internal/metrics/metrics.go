package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a private registry.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
	incidentsResolved prometheus.Counter
	hubClients        prometheus.Gauge
	hubDropped        prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		incidentsResolved: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "incidents_resolved_total",
				Help: "Total number of resolve operations applied to incidents.",
			},
		),
		hubClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "event_hub_clients",
				Help: "Dashboard viewers connected to the event hub.",
			},
		),
		hubDropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "event_hub_dropped_total",
				Help: "Incident events dropped because the broadcast queue was full.",
			},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.incidentsResolved,
		m.hubClients,
		m.hubDropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(method, route, code).Inc()
	m.httpLatency.WithLabelValues(method, route, code).Observe(elapsed.Seconds())
}

func (m *Metrics) IncidentResolved() {
	if m == nil {
		return
	}
	m.incidentsResolved.Inc()
}

func (m *Metrics) SetHubClients(n int) {
	if m == nil {
		return
	}
	m.hubClients.Set(float64(n))
}

func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.hubDropped.Inc()
}
