package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus collectors for the recomputation pipeline.
type Metrics struct {
	recomputations   prometheus.Counter
	persistFailures  prometheus.Counter
	unreachedTargets prometheus.Counter
	coercedInputs    *prometheus.CounterVec
}

// MustNewMetrics registers the collectors on reg and panics on a
// registration conflict. Tests should pass a fresh registry.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retirement",
			Subsystem: "projection",
			Name:      "recomputations_total",
			Help:      "Number of times the projection pipeline ran.",
		}),
		persistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retirement",
			Subsystem: "store",
			Name:      "persist_failures_total",
			Help:      "Snapshots that could not be fully written to the parameter store.",
		}),
		unreachedTargets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "retirement",
			Subsystem: "projection",
			Name:      "unreached_targets_total",
			Help:      "Projections that stopped at the age horizon without reaching the target.",
		}),
		coercedInputs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retirement",
			Subsystem: "input",
			Name:      "coerced_total",
			Help:      "Numeric edits that failed to parse and were replaced by the field fallback.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.recomputations, m.persistFailures, m.unreachedTargets, m.coercedInputs)
	return m
}

// ObserveRecompute counts one pipeline run; reached is false when the
// target was not reached within the horizon.
func (m *Metrics) ObserveRecompute(reached bool) {
	if m == nil {
		return
	}
	m.recomputations.Inc()
	if !reached {
		m.unreachedTargets.Inc()
	}
}

func (m *Metrics) IncPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) IncCoercedInput(field string) {
	if m == nil {
		return
	}
	m.coercedInputs.WithLabelValues(field).Inc()
}
