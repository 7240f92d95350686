package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit ledger.
type Metrics struct {
	EntriesAppended  prometheus.Counter
	PublishesDropped prometheus.Counter
}

// New creates ledger metrics registered with the default registry.
func New() *Metrics {
	return &Metrics{
		EntriesAppended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_audit_entries_total",
			Help: "Total audit log entries appended",
		}),
		PublishesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_audit_publishes_dropped_total",
			Help: "Audit entries dropped by the async publisher buffer",
		}),
	}
}

// IncrementEntriesAppended records one appended entry.
func (m *Metrics) IncrementEntriesAppended() {
	if m != nil {
		m.EntriesAppended.Inc()
	}
}

// IncrementPublishesDropped records one dropped publish.
func (m *Metrics) IncrementPublishesDropped() {
	if m != nil {
		m.PublishesDropped.Inc()
	}
}
