package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the application.
// It is passed explicitly to the components that record metrics; a nil
// *Metrics is valid and records nothing.
type Metrics struct {
	rpcCallsTotal   *prometheus.CounterVec
	rpcCallDuration *prometheus.HistogramVec
	rpcRetries      *prometheus.CounterVec

	keypairsGenerated *prometheus.CounterVec
	intentsBuilt      *prometheus.CounterVec
	activeSessions    *prometheus.GaugeVec
}

// NewMetrics creates a new Metrics instance and registers all collectors.
// If registry is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &Metrics{
		rpcCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_rpc_calls_total",
				Help: "Total number of balance RPC calls by chain and status",
			},
			[]string{"chain", "method", "status"},
		),
		rpcCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wallet_rpc_call_duration_seconds",
				Help:    "Duration of balance RPC calls in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"chain", "method"},
		),
		rpcRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_rpc_retries_total",
				Help: "Total number of balance RPC retry attempts",
			},
			[]string{"chain", "method"},
		),
		keypairsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_keypairs_generated_total",
				Help: "Total number of keypairs generated by scheme and status",
			},
			[]string{"scheme", "status"},
		),
		intentsBuilt: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_intents_built_total",
				Help: "Total number of transfer and swap intents by kind and result",
			},
			[]string{"kind", "result"},
		),
		activeSessions: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "wallet_active_sessions",
				Help: "Number of open wallet sessions by chain",
			},
			[]string{"chain"},
		),
	}
}

// RecordRPCCall records a balance RPC call with duration.
func (m *Metrics) RecordRPCCall(chain, method, status string, duration float64) {
	if m == nil {
		return
	}
	m.rpcCallsTotal.WithLabelValues(chain, method, status).Inc()
	m.rpcCallDuration.WithLabelValues(chain, method).Observe(duration)
}

// RecordRPCRetry records a retry attempt.
func (m *Metrics) RecordRPCRetry(chain, method string) {
	if m == nil {
		return
	}
	m.rpcRetries.WithLabelValues(chain, method).Inc()
}

// RecordKeypair records a keypair generation attempt.
func (m *Metrics) RecordKeypair(scheme, status string) {
	if m == nil {
		return
	}
	m.keypairsGenerated.WithLabelValues(scheme, status).Inc()
}

// RecordIntent records an intent build; result is "ok" or the error kind.
func (m *Metrics) RecordIntent(kind, result string) {
	if m == nil {
		return
	}
	m.intentsBuilt.WithLabelValues(kind, result).Inc()
}

// SessionOpened increments the open session gauge.
func (m *Metrics) SessionOpened(chain string) {
	if m == nil {
		return
	}
	m.activeSessions.WithLabelValues(chain).Inc()
}

// SessionClosed decrements the open session gauge.
func (m *Metrics) SessionClosed(chain string) {
	if m == nil {
		return
	}
	m.activeSessions.WithLabelValues(chain).Dec()
}
