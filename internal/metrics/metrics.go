// Package metrics exposes Prometheus collectors for the scoring service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithHistogramBuckets sets custom buckets for the RPC latency histogram.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithProcessCollectors adds the Go runtime and process collectors.
func WithProcessCollectors() Option {
	return func(m *Manager) {
		m.processCollectors = true
	}
}

// Manager owns a private registry and the service's collectors.
type Manager struct {
	namespace         string
	histogramBuckets  []float64
	processCollectors bool
	registry          *prometheus.Registry

	evaluationsSubmitted prometheus.Counter
	submissionRejections *prometheus.CounterVec
	rubricChanges        *prometheus.CounterVec
	lastWeightedScore    prometheus.Gauge
	rpcDuration          *prometheus.HistogramVec
}

// NewManager creates a Manager with its collectors registered.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "presentation_scoring",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.processCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)

	m.evaluationsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluations_submitted_total",
		Help:      "Evaluations appended to the log.",
	})

	m.submissionRejections = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "submission_rejections_total",
		Help:      "Submissions refused before reaching the log, by reason.",
	}, []string{"reason"})

	m.rubricChanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rubric_changes_total",
		Help:      "Rubric edits by operation.",
	}, []string{"op"})

	m.lastWeightedScore = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "last_weighted_score",
		Help:      "Weighted score of the most recent evaluation.",
	})

	m.rpcDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "grpc_request_duration_seconds",
		Help:      "gRPC unary request latency by method and status code.",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "code"})

	return m
}

func (m *Manager) EvaluationSubmitted(score float64) {
	m.evaluationsSubmitted.Inc()
	m.lastWeightedScore.Set(score)
}

func (m *Manager) SubmissionRejected(reason string) {
	m.submissionRejections.WithLabelValues(reason).Inc()
}

func (m *Manager) RubricChanged(op string) {
	m.rubricChanges.WithLabelValues(op).Inc()
}

// ObserveRPC records the latency of one unary call.
func (m *Manager) ObserveRPC(method, code string, d time.Duration) {
	m.rpcDuration.WithLabelValues(method, code).Observe(d.Seconds())
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
