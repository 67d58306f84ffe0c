// Package metrics exports Prometheus metrics for monitored invocations.
package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psantana5/fnmon/pkg/monitor"
)

// Recorder observes finished envelopes and exposes them as Prometheus
// metrics. It implements monitor.MetricsRecorder.
type Recorder struct {
	invocations        *prometheus.CounterVec
	executionSeconds   *prometheus.HistogramVec
	memoryDelta        *prometheus.GaugeVec
	validationFailures *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors. A nil
// registerer uses the default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		invocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fnmon_invocations_total",
				Help: "Total monitored invocations by function and status",
			},
			[]string{"function", "status"},
		),
		executionSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fnmon_execution_seconds",
				Help:    "Execution time of monitored invocations in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 10, 8),
			},
			[]string{"function"},
		),
		memoryDelta: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fnmon_memory_delta_bytes",
				Help: "Resident memory delta of the last monitored invocation",
			},
			[]string{"function"},
		),
		validationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fnmon_validation_failures_total",
				Help: "Validation and execution failures by function and kind",
			},
			[]string{"function", "kind"},
		),
	}

	reg.MustRegister(r.invocations)
	reg.MustRegister(r.executionSeconds)
	reg.MustRegister(r.memoryDelta)
	reg.MustRegister(r.validationFailures)

	return r
}

// Observe records one finished envelope
func (r *Recorder) Observe(res *monitor.Result) {
	r.invocations.WithLabelValues(res.FunctionName, string(res.Status)).Inc()
	r.executionSeconds.WithLabelValues(res.FunctionName).Observe(res.ExecutionTime)
	r.memoryDelta.WithLabelValues(res.FunctionName).Set(float64(res.MemoryUsage.Delta))

	for _, e := range res.Errors {
		if kind, ok := failureKind(e); ok {
			r.validationFailures.WithLabelValues(res.FunctionName, kind).Inc()
		}
	}
}

// failureKind classifies an envelope error entry by its prefix
func failureKind(entry string) (string, bool) {
	switch {
	case strings.HasPrefix(entry, "Input validation"):
		return "input", true
	case strings.HasPrefix(entry, "Output validation"):
		return "output", true
	case strings.HasPrefix(entry, "Execution error"):
		return "execution", true
	default:
		return "", false
	}
}

// Handler serves the default registry in Prometheus exposition format
func Handler() http.Handler {
	return promhttp.Handler()
}
