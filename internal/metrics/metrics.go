// Package metrics exposes Prometheus instrumentation for the transaction
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Recorder holds the transaction counters. A nil Recorder is safe to use
// and records nothing.
type Recorder struct {
	transactions *prometheus.CounterVec
	fees         *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teller",
			Name:      "transactions_total",
			Help:      "Transactions processed, by type and outcome.",
		}, []string{"type", "outcome"}),
		fees: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teller",
			Name:      "fees_charged_total",
			Help:      "Total fees charged, by transaction type.",
		}, []string{"type"}),
	}
	reg.MustRegister(r.transactions, r.fees)
	return r
}

// ObserveTransaction counts one processed transaction.
func (r *Recorder) ObserveTransaction(txType, outcome string) {
	if r == nil {
		return
	}
	r.transactions.WithLabelValues(txType, outcome).Inc()
}

// ObserveFee accumulates a charged fee.
func (r *Recorder) ObserveFee(txType string, fee decimal.Decimal) {
	if r == nil {
		return
	}
	f, _ := fee.Float64()
	r.fees.WithLabelValues(txType).Add(f)
}
