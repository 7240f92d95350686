package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the quote module.
type Metrics struct {
	QuotesSubmitted    prometheus.Counter
	ComparisonsTotal   *prometheus.CounterVec
	ComparisonDuration prometheus.Histogram
}

// New creates quote metrics registered with the default registry.
func New() *Metrics {
	return &Metrics{
		QuotesSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "anchorledger_quotes_submitted_total",
			Help: "Total quotes submitted",
		}),
		ComparisonsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "anchorledger_quote_comparisons_total",
			Help: "Quote comparisons by outcome",
		}, []string{"outcome"}),
		ComparisonDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "anchorledger_quote_comparison_duration_seconds",
			Help:    "Duration of quote comparisons",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementSubmitted records a stored quote.
func (m *Metrics) IncrementSubmitted() {
	if m != nil {
		m.QuotesSubmitted.Inc()
	}
}

// IncrementComparison records a comparison outcome ("matched" or "empty").
func (m *Metrics) IncrementComparison(outcome string) {
	if m != nil {
		m.ComparisonsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveComparison records comparison duration. Call with time.Now() at the
// start.
func (m *Metrics) ObserveComparison(start time.Time) {
	if m != nil {
		m.ComparisonDuration.Observe(time.Since(start).Seconds())
	}
}
