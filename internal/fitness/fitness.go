// Package fitness is the Fitness Evaluator (C5): a pure function of a
// schedule state and a weight table that scores a candidate schedule by
// weighted penalties and utilisation/balance bonuses (spec §4.5).
package fitness

import (
	"math"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

const baseScore = 10000

// basePenaltyBySeverity is the severity-keyed penalty base from spec §4.5.
var basePenaltyBySeverity = map[model.Severity]float64{
	model.SeverityCritical: 1000,
	model.SeverityHigh:     100,
	model.SeverityMedium:   10,
	model.SeverityLow:      1,
	model.SeverityInfo:     0,
}

// TypeBreakdown is the per-conflict-type aggregate in a Report.
type TypeBreakdown struct {
	Type      model.ConflictType
	Count     int
	Penalty   float64
}

// Report is the evaluator's output (spec §6 FitnessReport).
type Report struct {
	Total       float64
	HardPenalty float64
	SoftPenalty float64
	Bonuses     float64
	ByType      map[model.ConflictType]TypeBreakdown
}

// hardTypes are the invariant-violating conflict types whose penalty
// counts as "hard"; everything else counts as "soft" in the breakdown.
var hardTypes = map[model.ConflictType]bool{
	model.ConflictTeacherOverlap:  true,
	model.ConflictRoomOverlap:     true,
	model.ConflictStudentOverlap:  true,
	model.ConflictRoomCapacity:    true,
	model.ConflictSubjectMismatch: true,
}

// Evaluate computes the fitness score of state's current conflicts plus
// its room/teacher balance bonuses. weights maps conflict type (string
// form) to a weight percentage; see pkg/config.DefaultConstraintWeights.
func Evaluate(conflicts []conflict.Conflict, state *schedule.State, weights map[string]float64) Report {
	report := Report{Total: baseScore, ByType: make(map[model.ConflictType]TypeBreakdown)}

	var totalPenalty float64
	for _, c := range conflicts {
		if c.Status != model.ConflictActive {
			continue
		}
		p := penaltyOf(c, weights)
		totalPenalty += p
		bt := report.ByType[c.Type]
		bt.Type = c.Type
		bt.Count++
		bt.Penalty += p
		report.ByType[c.Type] = bt

		if hardTypes[c.Type] {
			report.HardPenalty += p
		} else {
			report.SoftPenalty += p
		}
	}

	bonus := roomUtilizationBonus(state) + teacherLoadBonus(state)
	report.Bonuses = bonus

	total := baseScore - totalPenalty + bonus
	if total < 0 {
		total = 0
	}
	report.Total = total
	return report
}

// penaltyOf implements spec §4.5's penalty formula:
//   base_penalty(severity) × (weight/100) × (1 if affected<=1 else ln(affected+1))
func penaltyOf(c conflict.Conflict, weights map[string]float64) float64 {
	base := basePenaltyBySeverity[c.Severity]
	weight := weights[string(c.Type)] / 100
	affected := affectedCount(c)
	multiplier := 1.0
	if affected > 1 {
		multiplier = math.Log(float64(affected) + 1)
	}
	return base * weight * multiplier
}

func affectedCount(c conflict.Conflict) int {
	seen := make(map[string]bool)
	for _, id := range c.AffectedSlots {
		seen[id] = true
	}
	for _, id := range c.AffectedTeachers {
		seen["t:"+id] = true
	}
	for _, id := range c.AffectedStudents {
		seen["s:"+id] = true
	}
	for _, id := range c.AffectedRooms {
		seen["r:"+id] = true
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// roomUtilizationBonus rewards an even spread of slot counts across used
// rooms: bonus = 50 / (1 + σ), σ = population stddev of per-room usage
// (spec §4.5).
func roomUtilizationBonus(state *schedule.State) float64 {
	usage := make(map[string]int)
	for _, s := range state.Snapshot() {
		if s.HasRoom() {
			usage[s.RoomID]++
		}
	}
	return 50 / (1 + stddev(countsOf(usage)))
}

// teacherLoadBonus rewards an even spread of slot counts across teachers,
// by the same formula as roomUtilizationBonus.
func teacherLoadBonus(state *schedule.State) float64 {
	load := make(map[string]int)
	for _, s := range state.Snapshot() {
		if s.HasTeacher() {
			load[s.TeacherID]++
		}
	}
	return 50 / (1 + stddev(countsOf(load)))
}

func countsOf(m map[string]int) []float64 {
	out := make([]float64, 0, len(m))
	for _, v := range m {
		out = append(out, float64(v))
	}
	return out
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
