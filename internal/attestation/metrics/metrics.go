package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the attestation module.
type Metrics struct {
	AttestationsIssued prometheus.Counter
	IssueDuration      prometheus.Histogram
	Verifications      *prometheus.CounterVec
}

// New creates attestation metrics registered with the default registry.
func New() *Metrics {
	return &Metrics{
		AttestationsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_attestations_issued_total",
			Help: "Total attestations issued",
		}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorledger_attestation_issue_duration_seconds",
			Help:    "Duration of attestation issuance",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorledger_attestation_verifications_total",
			Help: "Attestation verification lookups by outcome",
		}, []string{"result"}),
	}
}

// IncrementIssued records a successful issuance.
func (m *Metrics) IncrementIssued() {
	if m != nil {
		m.AttestationsIssued.Inc()
	}
}

// ObserveIssue records issuance duration. Call with time.Now() at the start.
func (m *Metrics) ObserveIssue(start time.Time) {
	if m != nil {
		m.IssueDuration.Observe(time.Since(start).Seconds())
	}
}

// IncrementVerification records a verification outcome ("valid" or "invalid").
func (m *Metrics) IncrementVerification(result string) {
	if m != nil {
		m.Verifications.WithLabelValues(result).Inc()
	}
}
