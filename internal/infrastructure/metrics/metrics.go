// Package metrics colectores Prometheus del BFF: llamadas upstream, ramas degradadas
// y peticiones HTTP entrantes.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
)

const namespace = "storefront"

// Resultados posibles de una llamada upstream.
const (
	OutcomeOK        = "ok"
	OutcomeError     = "error"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport"
)

var _ ports.DegradationRecorder = (*Metrics)(nil)

// Metrics agrupa los colectores sobre un registro propio (no el global), de modo que cada
// proceso o test tiene su propio estado.
type Metrics struct {
	Registry *prometheus.Registry

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	degraded         *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New crea y registra los colectores. withRuntime agrega los colectores de proceso y de Go.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		upstreamCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Llamadas a servicios upstream por servicio, operación y resultado.",
			},
			[]string{"service", "operation", "outcome"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "request_duration_seconds",
				Help:      "Duración de las llamadas upstream.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 11), // 5ms a ~5s
			},
			[]string{"service", "operation"},
		),
		degraded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "degraded_branches_total",
				Help:      "Ramas opcionales que cayeron a valores por defecto.",
			},
			[]string{"branch"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Peticiones HTTP atendidas.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duración de las peticiones HTTP.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 11),
			},
			[]string{"method", "route"},
		),
	}

	m.Registry.MustRegister(m.upstreamCalls, m.upstreamDuration, m.degraded, m.httpRequests, m.httpDuration)
	if withRuntime {
		m.Registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}
	return m
}

// ObserveUpstream registra una llamada upstream terminada.
func (m *Metrics) ObserveUpstream(service, operation, outcome string, d time.Duration) {
	m.upstreamCalls.WithLabelValues(service, operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(service, operation).Observe(d.Seconds())
}

// RecordDegraded implementa ports.DegradationRecorder.
func (m *Metrics) RecordDegraded(branch string) {
	m.degraded.WithLabelValues(branch).Inc()
}

// ObserveHTTP registra una petición entrante. route es el patrón de la ruta, no la URL,
// para no disparar la cardinalidad con ids de producto.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	method = strings.ToUpper(method)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
