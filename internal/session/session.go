// Package session orchestrates one optimisation session: it owns the
// read-model snapshot and mutable schedule state, and wires C1-C9 into the
// detect / evaluate / resolve loop described in spec §2 and §5. This is
// the "external driver" role spec §2 describes as living outside the
// core — implemented here in the teacher's own service-orchestration
// style (see schedule_generator_service.go) rather than as a separate
// host.
package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/fitness"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/placement"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/resolver"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/waitlist"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/metrics"
)

// Config bundles the capability records every component needs (spec §9:
// "compose via small capability records... rather than inversion-of-
// control containers").
type Config struct {
	Detector          conflict.Config
	ConstraintWeights map[string]float64
	Resolver          resolver.Config
	Placement         placement.Config
}

// Session wires one read-model snapshot, one mutable schedule state, and
// the shared success-history/metrics collectors an optimisation run needs.
type Session struct {
	State   *schedule.State
	RM      *model.ReadModel
	Gate    *waitlist.Gate
	History *resolver.SuccessHistory
	Metrics *metrics.Session
	Now     model.Timekeeper
	Cfg     Config
	Log     *zap.Logger
}

// New constructs a Session over an existing read-model and state. A nil
// logger is replaced with zap's no-op logger so Run never needs a nil
// check, following the teacher's own "always hand services a usable
// logger" construction convention.
func New(rm *model.ReadModel, state *schedule.State, now model.Timekeeper, cfg Config, metricsSession *metrics.Session) *Session {
	cfg.Resolver.DetectorConfig = cfg.Detector
	cfg.Resolver.ConstraintWeights = cfg.ConstraintWeights
	return &Session{
		State:   state,
		RM:      rm,
		Gate:    waitlist.NewGate(state, rm, now),
		History: resolver.NewSuccessHistory(),
		Metrics: metricsSession,
		Now:     now,
		Cfg:     cfg,
		Log:     zap.NewNop(),
	}
}

// WithLogger swaps in a configured logger (e.g. the process logger from
// pkg/logger) in place of the no-op default.
func (s *Session) WithLogger(l *zap.Logger) *Session {
	if l != nil {
		s.Log = l
	}
	return s
}

// Result is the outcome of one Run.
type Result struct {
	Report         conflict.Report
	Fitness        fitness.Report
	ResolverResult resolver.Result
	Placements     []placement.Section
}

// Run executes the detect -> evaluate -> resolve loop under a time and
// iteration budget (spec §5). It returns best-so-far on expiry without
// rolling back committed edits; shouldContinue lets the external driver
// cancel between iterations.
func (s *Session) Run(maxIterations int, timeBudget time.Duration, shouldContinue func() bool) Result {
	start := s.Now.Now()
	combined := func() bool {
		if shouldContinue != nil && !shouldContinue() {
			return false
		}
		if timeBudget <= 0 {
			return true
		}
		elapsed := time.Duration(s.Now.Now().Unix-start.Unix) * time.Second
		return elapsed < timeBudget
	}

	resolverCfg := s.Cfg.Resolver
	if maxIterations > 0 {
		resolverCfg.MaxAutoResolveIterations = maxIterations
	}
	resolverCfg.Recorder = s.Metrics

	now := s.Now.Now()
	result := resolver.AutoResolve(s.State, s.RM, s.History, resolverCfg, now, combined)

	report := conflict.Detect(s.State, s.RM, s.Cfg.Detector, now)
	fitnessReport := fitness.Evaluate(report.Conflicts, s.State, s.Cfg.ConstraintWeights)

	sections := placement.DeriveSingletons(s.RM.AllCourses(), placement.SectionsFromReadModel(s.RM))
	placements := placement.PlaceSingletons(sections, s.Cfg.Placement)

	s.Log.Info("session run complete",
		zap.Int("resolved", result.ResolvedCount),
		zap.Int("remaining", result.Remaining),
		zap.Int("iterations", result.Iterations),
		zap.Float64("fitness_score", fitnessReport.Total),
	)
	for _, w := range report.Warnings {
		s.Log.Warn("detector warning", zap.String("detail", w))
	}

	if s.Metrics != nil {
		for _, c := range report.Conflicts {
			s.Metrics.RecordConflict(string(c.Type), string(c.Severity))
		}
		s.Metrics.SetFitnessScore(fitnessReport.Total)
		for i := 0; i < result.Iterations; i++ {
			s.Metrics.RecordAutoResolveIteration()
		}
	}

	return Result{Report: report, Fitness: fitnessReport, ResolverResult: result, Placements: placements}
}
