package resolver

import (
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// hardConstraintComponent scores 0..50 by severity (spec §4.7).
func hardConstraintComponent(sev model.Severity) float64 {
	switch sev {
	case model.SeverityCritical:
		return 50
	case model.SeverityHigh:
		return 35
	case model.SeverityMedium:
		return 20
	case model.SeverityLow:
		return 10
	default:
		return 0
	}
}

// affectedEntitiesComponent scores 0..25 by a step function on the count
// of distinct affected entities.
func affectedEntitiesComponent(count int) float64 {
	switch {
	case count >= 10:
		return 25
	case count >= 5:
		return 20
	case count >= 3:
		return 15
	case count >= 1:
		return 10
	default:
		return 0
	}
}

// cascadeComponent scores 0..25 as 5x the estimated number of downstream
// conflicts the given conflict's removal would also resolve, capped.
func cascadeComponent(estimatedDownstream int) float64 {
	v := float64(5 * estimatedDownstream)
	if v > 25 {
		return 25
	}
	return v
}

// historicalDifficultyByType scores 0..15 by conflict type: overlap types
// (structural, usually one clean move) resolve easily; workload/travel
// types tend to need iterative adjustment.
var historicalDifficultyByType = map[model.ConflictType]float64{
	model.ConflictTeacherOverlap:         5,
	model.ConflictRoomOverlap:            5,
	model.ConflictStudentOverlap:         8,
	model.ConflictRoomCapacity:           6,
	model.ConflictSubjectMismatch:        8,
	model.ConflictExcessiveTeachingHours: 12,
	model.ConflictNoPrepPeriod:           12,
	model.ConflictNoLunchBreak:           10,
	model.ConflictRoomTypeMismatch:       4,
	model.ConflictTeacherTravel:          6,
	model.ConflictEquipmentUnavailable:   10,
	model.ConflictSectionOverEnrolled:    10,
	model.ConflictSectionUnderEnrolled:   8,
}

func historicalDifficulty(t model.ConflictType) float64 {
	if v, ok := historicalDifficultyByType[t]; ok {
		return v
	}
	return 15
}

// timeSensitivity scores 0..10 by conflict age in days (spec §4.7).
func timeSensitivity(ageDays int) float64 {
	switch {
	case ageDays <= 0:
		return 10
	case ageDays <= 1:
		return 8
	case ageDays <= 3:
		return 6
	case ageDays <= 7:
		return 4
	case ageDays <= 14:
		return 2
	default:
		return 0
	}
}

// PriorityScore computes a conflict's 0..100 resolution-order score
// (spec §4.7). estimatedDownstream and ageDays are supplied by the caller
// since they depend on context beyond the Conflict record itself.
func PriorityScore(c conflict.Conflict, estimatedDownstream, ageDays int) float64 {
	score := hardConstraintComponent(c.Severity) +
		affectedEntitiesComponent(affectedEntityCount(c)) +
		cascadeComponent(estimatedDownstream) +
		historicalDifficulty(c.Type) +
		timeSensitivity(ageDays)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func affectedEntityCount(c conflict.Conflict) int {
	return len(c.AffectedSlots) + len(c.AffectedTeachers) + len(c.AffectedStudents) + len(c.AffectedRooms)
}
