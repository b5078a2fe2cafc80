package resolver

import (
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Validate materialises a suggestion into a scratch copy of state, re-runs
// the detector, and requires that (a) no new CRITICAL conflict appears and
// (b) the targeted conflict is cleared (spec §4.6). It never mutates the
// caller's state.
func Validate(s Suggestion, target conflict.Conflict, state *schedule.State, rm *model.ReadModel, cfg Config, now model.Timestamp) (bool, conflict.Report) {
	scratch := schedule.NewStateFrom(state.Snapshot())
	if err := s.Apply(scratch); err != nil {
		return false, conflict.Report{}
	}

	before := conflict.Detect(state, rm, cfg.DetectorConfig, now)
	after := conflict.Detect(scratch, rm, cfg.DetectorConfig, now)

	if countCritical(after) > countCritical(before) {
		return false, after
	}
	if targetStillPresent(after, target) {
		return false, after
	}
	return true, after
}

func countCritical(r conflict.Report) int {
	n := 0
	for _, c := range r.Conflicts {
		if c.Severity == model.SeverityCritical && c.Status == model.ConflictActive {
			n++
		}
	}
	return n
}

func targetStillPresent(r conflict.Report, target conflict.Conflict) bool {
	for _, c := range r.Conflicts {
		if c.Type != target.Type || c.Status != model.ConflictActive {
			continue
		}
		if sameEntities(c.AffectedSlots, target.AffectedSlots) {
			return true
		}
	}
	return false
}

func sameEntities(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if set[id] {
			return true
		}
	}
	return false
}
