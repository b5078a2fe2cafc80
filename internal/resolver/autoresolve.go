package resolver

import (
	"sort"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Result summarises one auto-resolve run (spec §4.6/§8).
type Result struct {
	ResolvedCount int
	Remaining     int
	Iterations    int
}

// AutoResolve iterates active conflicts in priority order, applying the
// top validated suggestion at or above the confidence threshold, until no
// conflict makes progress, the iteration budget is spent, or
// shouldContinue reports false (spec §4.6, §5 cancellation). It commits
// edits directly to state; callers wanting scratch-only exploration should
// operate on a throwaway schedule.State copy.
func AutoResolve(state *schedule.State, rm *model.ReadModel, history *SuccessHistory, cfg Config, now model.Timestamp, shouldContinue func() bool) Result {
	resolved := 0
	iterations := 0

	for iterations < cfg.MaxAutoResolveIterations {
		if shouldContinue != nil && !shouldContinue() {
			break
		}
		report := conflict.Detect(state, rm, cfg.DetectorConfig, now)
		active := activeOnly(report.Conflicts)
		if len(active) == 0 {
			break
		}
		sortByPriority(active, now)

		progressed := false
		for _, c := range active {
			if iterations >= cfg.MaxAutoResolveIterations {
				break
			}
			iterations++

			beforeCount := len(activeOnly(conflict.Detect(state, rm, cfg.DetectorConfig, now).Conflicts))
			if tryResolveOne(c, state, rm, history, cfg, now) {
				afterCount := len(activeOnly(conflict.Detect(state, rm, cfg.DetectorConfig, now).Conflicts))
				if afterCount < beforeCount {
					resolved++
					progressed = true
				}
			}
		}
		if !progressed {
			break
		}
	}

	remaining := len(activeOnly(conflict.Detect(state, rm, cfg.DetectorConfig, now).Conflicts))
	return Result{ResolvedCount: resolved, Remaining: remaining, Iterations: iterations}
}

// tryResolveOne attempts the single highest-ranked validated suggestion at
// or above the confidence threshold for c. It returns whether a suggestion
// was successfully applied (the caller decides whether it actually reduced
// conflict count).
func tryResolveOne(c conflict.Conflict, state *schedule.State, rm *model.ReadModel, history *SuccessHistory, cfg Config, now model.Timestamp) bool {
	for _, s := range Generate(c, state, rm, history, cfg) {
		if s.Confidence < cfg.AutoApplyConfidenceThres/100 {
			continue
		}
		ok, _ := Validate(s, c, state, rm, cfg, now)
		if !ok {
			history.Record(string(s.Kind), false)
			recordRejected(cfg.Recorder, string(s.Kind))
			continue
		}
		if err := s.Apply(state); err != nil {
			history.Record(string(s.Kind), false)
			recordRejected(cfg.Recorder, string(s.Kind))
			continue
		}
		history.Record(string(s.Kind), true)
		recordApplied(cfg.Recorder, string(s.Kind))
		state.RecordConflictEvent(schedule.EventConflictResolved, c.ID, string(s.Kind))
		return true
	}
	return false
}

func recordApplied(r Recorder, kind string) {
	if r != nil {
		r.RecordSuggestionApplied(kind)
	}
}

func recordRejected(r Recorder, kind string) {
	if r != nil {
		r.RecordSuggestionRejected(kind)
	}
}

func activeOnly(conflicts []conflict.Conflict) []conflict.Conflict {
	out := make([]conflict.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if c.Status == model.ConflictActive {
			out = append(out, c)
		}
	}
	return out
}

func sortByPriority(conflicts []conflict.Conflict, now model.Timestamp) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		si := PriorityScore(conflicts[i], 0, ageDays(conflicts[i], now))
		sj := PriorityScore(conflicts[j], 0, ageDays(conflicts[j], now))
		if si != sj {
			return si > sj
		}
		return conflicts[i].ID < conflicts[j].ID
	})
}

func ageDays(c conflict.Conflict, now model.Timestamp) int {
	const secondsPerDay = 86400
	diff := now.Unix - c.DetectedAt.Unix
	if diff <= 0 {
		return 0
	}
	return int(diff / secondsPerDay)
}
