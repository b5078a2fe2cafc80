// Package conflict is the Conflict Detector (C4): a pure, re-entrant
// function over a consistent schedule snapshot that classifies and
// localises every kind of violation named in spec §3.
package conflict

import "github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"

// Conflict is one typed, localised invariant violation.
type Conflict struct {
	ID               string
	Type             model.ConflictType
	Severity         model.Severity
	Status           model.ConflictStatus
	AffectedSlots    []string
	AffectedTeachers []string
	AffectedStudents []string
	AffectedRooms    []string
	AffectedCourses  []string
	Day              string
	Start            string
	End              string
	DetectedAt       model.Timestamp
	ResolutionNotes  string
}

// Report is the detector's output: the conflicts found plus any
// data-quality warnings collected along the way (spec §6 DetectionReport).
type Report struct {
	Conflicts []Conflict
	Warnings  []string
}

// severityByType assigns severity deterministically by conflict type
// (spec §4.4): overlaps are CRITICAL, capacity/qualification HIGH,
// workload/prep/lunch MEDIUM, travel/type-mismatch LOW.
var severityByType = map[model.ConflictType]model.Severity{
	model.ConflictTeacherOverlap:         model.SeverityCritical,
	model.ConflictRoomOverlap:            model.SeverityCritical,
	model.ConflictStudentOverlap:         model.SeverityCritical,
	model.ConflictRoomCapacity:           model.SeverityHigh,
	model.ConflictSubjectMismatch:        model.SeverityHigh,
	model.ConflictExcessiveTeachingHours: model.SeverityMedium,
	model.ConflictNoPrepPeriod:           model.SeverityMedium,
	model.ConflictNoLunchBreak:           model.SeverityMedium,
	model.ConflictRoomTypeMismatch:       model.SeverityLow,
	model.ConflictTeacherTravel:          model.SeverityLow,
	model.ConflictEquipmentUnavailable:   model.SeverityMedium,
	model.ConflictSectionOverEnrolled:    model.SeverityHigh,
	model.ConflictSectionUnderEnrolled:   model.SeverityLow,
}

func severityOf(t model.ConflictType) model.Severity {
	if sev, ok := severityByType[t]; ok {
		return sev
	}
	return model.SeverityInfo
}
