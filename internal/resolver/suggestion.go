// Package resolver is the Resolver & Suggestion Engine (C6): it proposes
// localised edits that remove conflicts without introducing worse ones,
// validates them against a scratch state, and can drive an auto-resolve
// loop bounded by a confidence threshold and iteration budget.
package resolver

import (
	"github.com/google/uuid"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Edit is a human-readable description of one atomic change a Suggestion
// would make; it exists so a host can render/log a proposal before it
// commits, separate from the closure that actually performs it.
type Edit struct {
	Description string
	SlotID      string
	Field       string
	NewValue    string
}

// Suggestion is a proposed atomic edit aimed at removing a specific
// conflict (spec §4.6: a tuple of kind, edits, impact, confidence).
type Suggestion struct {
	ID                   string
	ConflictID           string
	Kind                 model.SuggestionKind
	Edits                []Edit
	EstimatedImpact      int
	Confidence           float64
	RequiresConfirmation bool

	apply func(*schedule.State) error
}

// Apply performs the suggestion's edit against state. SPLIT_SECTION and
// ADD_CO_TEACHER suggestions carry no state edit: their Apply returns nil
// and leaves state unchanged.
func (s Suggestion) Apply(state *schedule.State) error {
	if s.apply == nil {
		return nil
	}
	return s.apply(state)
}

// Recorder receives suggestion-outcome events from the auto-resolve loop.
// pkg/metrics.Session satisfies this without the resolver package needing
// to import it.
type Recorder interface {
	RecordSuggestionApplied(kind string)
	RecordSuggestionRejected(kind string)
}

// Config is the small capability record the resolver needs (weights,
// thresholds, course tables), passed explicitly rather than pulled from a
// global container (spec §9).
type Config struct {
	DefaultSuccessRates      map[string]float64
	AutoApplyConfidenceThres float64
	MaxAutoResolveIterations int
	DetectorConfig           conflict.Config
	ConstraintWeights        map[string]float64
	Recorder                 Recorder
}
