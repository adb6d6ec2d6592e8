package triage

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abhisek/triage/internal/fuzzy"
)

// Metrics are the ranker's Prometheus collectors.
type Metrics struct {
	rankingsTotal      *prometheus.CounterVec
	conditionsScored   prometheus.Counter
	conditionsMatched  prometheus.Counter
	diagnosticsTotal   *prometheus.CounterVec
	rankDuration       *prometheus.HistogramVec
	contextBonusesUsed prometheus.Counter
}

// NewMetrics registers the ranker collectors with reg. Passing nil creates
// unregistered collectors, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		rankingsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_rankings_total",
				Help: "Total number of catalogue rankings",
			},
			[]string{"mode"},
		),
		conditionsScored: f.NewCounter(
			prometheus.CounterOpts{
				Name: "triage_conditions_scored_total",
				Help: "Total number of conditions evaluated",
			},
		),
		conditionsMatched: f.NewCounter(
			prometheus.CounterOpts{
				Name: "triage_conditions_matched_total",
				Help: "Total number of conditions that scored above zero",
			},
		),
		diagnosticsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "triage_rule_diagnostics_total",
				Help: "Total number of rule subtrees skipped during evaluation",
			},
			[]string{"reason"},
		),
		rankDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "triage_rank_duration_seconds",
				Help:    "Catalogue ranking duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"mode"},
		),
		contextBonusesUsed: f.NewCounter(
			prometheus.CounterOpts{
				Name: "triage_context_bonuses_applied_total",
				Help: "Total number of context bonuses added to condition scores",
			},
		),
	}
}

// OnNode implements fuzzy.Tracer.
func (m *Metrics) OnNode(fuzzy.NodeEvent) {}

// OnDiagnostic implements fuzzy.Tracer by counting skipped subtrees.
func (m *Metrics) OnDiagnostic(d fuzzy.Diagnostic) {
	m.diagnosticsTotal.WithLabelValues(diagnosticReason(d.Err)).Inc()
}

func diagnosticReason(err error) string {
	switch {
	case errors.Is(err, fuzzy.ErrUnknownRuleKind):
		return "unknown_kind"
	case errors.Is(err, fuzzy.ErrRuleTreeTooDeep):
		return "too_deep"
	default:
		return "other"
	}
}

func (m *Metrics) observe(mode string, scored, matched, bonuses int, seconds float64) {
	m.rankingsTotal.WithLabelValues(mode).Inc()
	m.conditionsScored.Add(float64(scored))
	m.conditionsMatched.Add(float64(matched))
	m.contextBonusesUsed.Add(float64(bonuses))
	m.rankDuration.WithLabelValues(mode).Observe(seconds)
}
