// Package metrics instruments one optimisation session with Prometheus
// collectors, following the same private-registry pattern the corpus uses
// for HTTP/cache instrumentation (rather than registering against the
// global default registry).
package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session wraps the counters/gauges a scheduling session emits: conflicts
// detected by type, suggestions applied/rejected, auto-resolve iterations
// and the current fitness score.
type Session struct {
	registry *prometheus.Registry
	handler  http.Handler

	conflictsDetected   *prometheus.CounterVec
	suggestionsApplied  *prometheus.CounterVec
	suggestionsRejected *prometheus.CounterVec
	autoResolveIters    prometheus.Counter
	fitnessScore        prometheus.Gauge

	conflictTotal uint64
}

// NewSession registers a fresh collector set scoped to one session.
func NewSession() *Session {
	registry := prometheus.NewRegistry()

	conflictsDetected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_conflicts_detected_total",
		Help: "Conflicts detected by type",
	}, []string{"type", "severity"})

	suggestionsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_suggestions_applied_total",
		Help: "Suggestions applied by kind",
	}, []string{"kind"})

	suggestionsRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_suggestions_rejected_total",
		Help: "Suggestions rejected on scratch-state validation, by kind",
	}, []string{"kind"})

	autoResolveIters := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_auto_resolve_iterations_total",
		Help: "Iterations consumed by the auto-resolve loop",
	})

	fitnessScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scheduler_fitness_score",
		Help: "Most recently computed fitness score for the session",
	})

	registry.MustRegister(conflictsDetected, suggestionsApplied, suggestionsRejected, autoResolveIters, fitnessScore)

	return &Session{
		registry:            registry,
		handler:             promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		conflictsDetected:   conflictsDetected,
		suggestionsApplied:  suggestionsApplied,
		suggestionsRejected: suggestionsRejected,
		autoResolveIters:    autoResolveIters,
		fitnessScore:        fitnessScore,
	}
}

// Handler exposes the session's Prometheus HTTP handler for a host that
// wants to scrape it; the core itself never serves HTTP.
func (s *Session) Handler() http.Handler {
	if s == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return s.handler
}

// RecordConflict increments the per-type/severity conflict counter.
func (s *Session) RecordConflict(conflictType, severity string) {
	if s == nil {
		return
	}
	s.conflictsDetected.WithLabelValues(conflictType, severity).Inc()
	atomic.AddUint64(&s.conflictTotal, 1)
}

// RecordSuggestionApplied increments the applied-suggestion counter.
func (s *Session) RecordSuggestionApplied(kind string) {
	if s == nil {
		return
	}
	s.suggestionsApplied.WithLabelValues(kind).Inc()
}

// RecordSuggestionRejected increments the rejected-suggestion counter.
func (s *Session) RecordSuggestionRejected(kind string) {
	if s == nil {
		return
	}
	s.suggestionsRejected.WithLabelValues(kind).Inc()
}

// RecordAutoResolveIteration increments the auto-resolve loop counter.
func (s *Session) RecordAutoResolveIteration() {
	if s == nil {
		return
	}
	s.autoResolveIters.Inc()
}

// SetFitnessScore updates the session's fitness gauge.
func (s *Session) SetFitnessScore(score float64) {
	if s == nil {
		return
	}
	s.fitnessScore.Set(score)
}

// ConflictsObserved returns the running total of conflicts recorded.
func (s *Session) ConflictsObserved() uint64 {
	if s == nil {
		return 0
	}
	return atomic.LoadUint64(&s.conflictTotal)
}
