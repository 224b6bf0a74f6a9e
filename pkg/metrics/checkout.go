package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records counters and timings for the checkout pipeline.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	completed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	printed   *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outlet"})
	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_completed_total",
		Help: "Completed checkouts.",
	}, []string{"outlet", "payment_method"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Failed checkouts by error code.",
	}, []string{"outlet", "code"})
	printed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "receipt_print_total",
		Help: "Receipt print attempts by outcome.",
	}, []string{"outlet", "outcome"})
	reg.MustRegister(duration, completed, failed, printed)
	return &CheckoutMetrics{
		duration:  duration,
		completed: completed,
		failed:    failed,
		printed:   printed,
	}
}

// ObserveDuration records how long a checkout took for the outlet.
func (m *CheckoutMetrics) ObserveDuration(outlet string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(outlet)).Observe(duration.Seconds())
}

// IncCompleted increments the completed counter.
func (m *CheckoutMetrics) IncCompleted(outlet, paymentMethod string) {
	if m == nil || m.completed == nil {
		return
	}
	m.completed.WithLabelValues(normalizeLabel(outlet), normalizeLabel(paymentMethod)).Inc()
}

// IncFailed increments the failure counter for the given error code.
func (m *CheckoutMetrics) IncFailed(outlet, code string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(outlet), normalizeLabel(code)).Inc()
}

// IncPrinted increments the print counter with the outcome label.
func (m *CheckoutMetrics) IncPrinted(outlet, outcome string) {
	if m == nil || m.printed == nil {
		return
	}
	m.printed.WithLabelValues(normalizeLabel(outlet), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
