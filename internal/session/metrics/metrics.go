package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the session module.
type Metrics struct {
	SessionsOpened  prometheus.Counter
	OperationsBegun *prometheus.CounterVec
	ReplayRejected  prometheus.Counter
}

// New creates session metrics registered with the default registry.
func New() *Metrics {
	return &Metrics{
		SessionsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_sessions_opened_total",
			Help: "Total number of interaction sessions opened",
		}),
		OperationsBegun: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorledger_operations_begun_total",
			Help: "Total operations begun by operation type",
		}, []string{"type"}),
		ReplayRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_replay_rejected_total",
			Help: "Total operations rejected for a stale or repeated nonce",
		}),
	}
}

// IncrementSessionsOpened records a successful session creation.
func (m *Metrics) IncrementSessionsOpened() {
	if m != nil {
		m.SessionsOpened.Inc()
	}
}

// IncrementOperationsBegun records an accepted operation begin.
func (m *Metrics) IncrementOperationsBegun(opType string) {
	if m != nil {
		m.OperationsBegun.WithLabelValues(opType).Inc()
	}
}

// IncrementReplayRejected records a nonce rejection.
func (m *Metrics) IncrementReplayRejected() {
	if m != nil {
		m.ReplayRejected.Inc()
	}
}
