package transfer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOutcome(string)                  {}
func (n *NoopMetricsCollector) RecordValidatorDuration(time.Duration) {}
func (n *NoopMetricsCollector) RecordDocumentSize(int)                {}

// PrometheusMetrics exports validation metrics to Prometheus.
type PrometheusMetrics struct {
	outcomes          *prometheus.CounterVec
	validatorDuration prometheus.Histogram
	documentSize      prometheus.Histogram
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transfer_validations_total",
				Help: "Total number of transfer validations by outcome",
			},
			[]string{"outcome"},
		),
		validatorDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfer_validator_duration_seconds",
			Help:    "Latency of the external transfer validator",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		documentSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "transfer_document_bytes",
			Help:    "Size of stored confirmation documents",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
		}),
	}
	reg.MustRegister(m.outcomes, m.validatorDuration, m.documentSize)
	return m
}

func (m *PrometheusMetrics) RecordOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) RecordValidatorDuration(d time.Duration) {
	m.validatorDuration.Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordDocumentSize(bytes int) {
	m.documentSize.Observe(float64(bytes))
}
