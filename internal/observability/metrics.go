package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service. A nil
// *Metrics is valid and records nothing, so wiring stays optional in tests.
type Metrics struct {
	OpenDebates       prometheus.Gauge
	Connections       prometheus.Gauge
	DebateEvents      *prometheus.CounterVec
	Evaluations       *prometheus.CounterVec
	EvaluationLatency prometheus.Histogram
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		OpenDebates: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_debates",
			Help:      "Number of debates currently open.",
		}),
		Connections: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Number of live websocket connections.",
		}),
		DebateEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "debate_events_total",
			Help:      "Debate events by type.",
		}, []string{"event"}),
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Debate evaluations by outcome.",
		}, []string{"outcome"}),
		EvaluationLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "evaluation_latency_seconds",
			Help:      "Latency of the external evaluation call in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30},
		}),
	}
}

func (m *Metrics) DebateOpened() {
	if m == nil {
		return
	}
	m.OpenDebates.Inc()
}

func (m *Metrics) DebateClosed() {
	if m == nil {
		return
	}
	m.OpenDebates.Dec()
}

func (m *Metrics) ConnectionOpened() {
	if m == nil {
		return
	}
	m.Connections.Inc()
}

func (m *Metrics) ConnectionClosed() {
	if m == nil {
		return
	}
	m.Connections.Dec()
}

func (m *Metrics) CountEvent(event string) {
	if m == nil {
		return
	}
	m.DebateEvents.WithLabelValues(event).Inc()
}

func (m *Metrics) ObserveEvaluation(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Evaluations.WithLabelValues(outcome).Inc()
	m.EvaluationLatency.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
