package interceptors

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector defines the interface for collecting metrics
type MetricsCollector interface {
	IncrementCallCount(target string)
	RecordCallDuration(target string, duration time.Duration)
	IncrementOutcomeCount(target string, outcome Outcome)
}

// MetricsInterceptor collects metrics about calls
type MetricsInterceptor struct {
	collector MetricsCollector
}

// NewMetricsInterceptor creates a new metrics interceptor
func NewMetricsInterceptor(collector MetricsCollector) *MetricsInterceptor {
	return &MetricsInterceptor{collector: collector}
}

// Before implements Interceptor
func (i *MetricsInterceptor) Before(call *Call) {
	i.collector.IncrementCallCount(call.Target)
}

// After implements Interceptor
func (i *MetricsInterceptor) After(call *Call) {
	i.collector.RecordCallDuration(call.Target, call.Duration())
	i.collector.IncrementOutcomeCount(call.Target, call.Outcome())
}

// Name implements Interceptor
func (i *MetricsInterceptor) Name() string {
	return "MetricsInterceptor"
}

// PrometheusCollector is a MetricsCollector backed by Prometheus
type PrometheusCollector struct {
	calls    *prometheus.CounterVec
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusCollector creates the collectors and registers them with reg.
// Collectors that are already registered under the same names are reused.
func NewPrometheusCollector(reg prometheus.Registerer, namespace string) (*PrometheusCollector, error) {
	c := &PrometheusCollector{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "calls_total", Help: "calls started, by target"},
			[]string{"target"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "call_outcomes_total", Help: "finished calls, by target and outcome"},
			[]string{"target", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "call_duration_seconds",
				Help:      "call duration including exception and post callbacks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"target"},
		),
	}

	var err error
	if c.calls, err = register(reg, c.calls); err != nil {
		return nil, err
	}
	if c.outcomes, err = register(reg, c.outcomes); err != nil {
		return nil, err
	}
	if c.duration, err = register(reg, c.duration); err != nil {
		return nil, err
	}

	return c, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// IncrementCallCount implements MetricsCollector
func (c *PrometheusCollector) IncrementCallCount(target string) {
	c.calls.WithLabelValues(target).Inc()
}

// RecordCallDuration implements MetricsCollector
func (c *PrometheusCollector) RecordCallDuration(target string, duration time.Duration) {
	c.duration.WithLabelValues(target).Observe(duration.Seconds())
}

// IncrementOutcomeCount implements MetricsCollector
func (c *PrometheusCollector) IncrementOutcomeCount(target string, outcome Outcome) {
	c.outcomes.WithLabelValues(target, string(outcome)).Inc()
}
