package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/numcalc/internal/metrics"
)

// Metrics holds the server's Prometheus registry. Each instance owns its
// registry so servers and tests do not share global state.
type Metrics struct {
	registry       *prometheus.Registry
	activeRequests prometheus.Gauge
	requestsTotal  prometheus.Counter
	evaluations    *metrics.EvaluationCollector
	handler        http.Handler
}

// NewMetrics builds a registry with request, evaluation and Go runtime metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metrics.Namespace,
			Name:      "active_requests",
			Help:      "Requests currently being served.",
		}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metrics.Namespace,
			Name:      "requests_total",
			Help:      "Requests served since start.",
		}),
	}
	reg.MustRegister(
		m.activeRequests,
		m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.evaluations = metrics.NewEvaluationCollector(reg)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
	m.requestsTotal.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// Evaluations returns the evaluation collector registered with this registry.
func (m *Metrics) Evaluations() *metrics.EvaluationCollector { return m.evaluations }

// WritePrometheus writes the exposition for r.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
