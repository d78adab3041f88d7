package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
)

// Metrics owns a private registry so a batch run can dump exactly its own
// series to a textfile.
type Metrics struct {
	registry *prometheus.Registry

	DispatchTotal    *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
	ToolCalls        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_dispatch_total",
				Help: "Queries handled, by responsible agent and outcome",
			},
			[]string{"specialist", "outcome"},
		),
		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "career_dispatch_duration_seconds",
				Help:    "End-to-end query latency including model calls",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			},
			[]string{"specialist"},
		),
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "career_tool_calls_total",
				Help: "Tool function invocations",
			},
			[]string{"tool"},
		),
	}
}

func (m *Metrics) ObserveDispatch(specialist, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if specialist == "" {
		specialist = "none"
	}
	m.DispatchTotal.WithLabelValues(specialist, outcome).Inc()
	m.DispatchDuration.WithLabelValues(specialist).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveToolCall(tool string) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
