package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ActivityMetrics records operation-level metrics for the activity module.
type ActivityMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
	RecordContentionRetry(ctx context.Context, operation string)
}

type promMetrics struct {
	attempts   *prometheus.CounterVec
	successes  *prometheus.CounterVec
	failures   *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	contention *prometheus.CounterVec
}

// NewActivityMetrics registers and returns prometheus-backed activity metrics.
func NewActivityMetrics(reg prometheus.Registerer) ActivityMetrics {
	m := &promMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_operation_attempts_total",
			Help: "Number of activity operations attempted.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_operation_success_total",
			Help: "Number of activity operations that succeeded.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_operation_failure_total",
			Help: "Number of activity operations that failed.",
		}, []string{"operation", "service"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "activity_operation_duration_seconds",
			Help:    "Duration of activity operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		contention: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activity_contention_retries_total",
			Help: "Number of operations retried due to header lock contention.",
		}, []string{"operation"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.contention)
	return m
}

func (m *promMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *promMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *promMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *promMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(duration.Seconds())
}

func (m *promMetrics) RecordContentionRetry(_ context.Context, operation string) {
	m.contention.WithLabelValues(operation).Inc()
}

type noopMetrics struct{}

// NewNoop returns metrics that discard everything. Used in tests.
func NewNoop() ActivityMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (noopMetrics) RecordContentionRetry(context.Context, string)                          {}
