package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics provides observability for the HTTP service.
type Metrics struct {
	// Verification outcomes: linear, not_linear or the failure kind
	Verifications *prometheus.CounterVec

	// Time spent in the verifier per request
	VerifyLatency prometheus.Histogram

	// Tool calls by tool name and status (ok, error)
	ToolCalls *prometheus.CounterVec
}

// NewMetrics registers the service metrics, plus the Go runtime and process
// collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linearcheck_verifications_total",
			Help: "Total verifications by outcome",
		}, []string{"outcome"}),

		VerifyLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "linearcheck_verify_duration_seconds",
			Help:    "Duration of a single verification",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		}),

		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linearcheck_tool_calls_total",
			Help: "Total tool calls by tool and status",
		}, []string{"tool", "status"}),
	}
	reg.MustRegister(
		m.Verifications,
		m.VerifyLatency,
		m.ToolCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveVerification records one verification.
func (m *Metrics) ObserveVerification(outcome string, d time.Duration) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
		m.VerifyLatency.Observe(d.Seconds())
	}
}

// IncrementToolCall records one tool call.
func (m *Metrics) IncrementToolCall(tool, status string) {
	if m != nil {
		m.ToolCalls.WithLabelValues(tool, status).Inc()
	}
}
