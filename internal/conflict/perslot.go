package conflict

import (
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// detectCapacity emits ROOM_CAPACITY when a slot's roster exceeds its
// room's capacity (spec §4.4).
func detectCapacity(slot model.Slot, rm *model.ReadModel, now model.Timestamp) *Conflict {
	if !slot.HasRoom() {
		return nil
	}
	room, ok := rm.Room(slot.RoomID)
	if !ok || slot.Enrolled() <= room.Capacity {
		return nil
	}
	return &Conflict{
		Type:             model.ConflictRoomCapacity,
		Severity:         severityOf(model.ConflictRoomCapacity),
		Status:           model.ConflictActive,
		AffectedSlots:    []string{slot.ID},
		AffectedRooms:    []string{slot.RoomID},
		AffectedCourses:  []string{slot.CourseID},
		Day:              slot.Day.String(),
		Start:            slot.Start.String(),
		End:              slot.End.String(),
		DetectedAt:       now,
	}
}

// detectQualification emits SUBJECT_MISMATCH when the slot's teacher holds
// no certification matching the course's required set (§4.8). A
// grade-range mismatch (certification subject matches but the course's
// level falls outside the certification's grade range) is reported at a
// lower severity than a full mismatch, per §4.8's "warning-level ... rather
// than CRITICAL" guidance generalised to this type's own default severity.
func detectQualification(slot model.Slot, rm *model.ReadModel, now model.Timestamp) *Conflict {
	if !slot.HasTeacher() {
		return nil
	}
	course, ok := rm.Course(slot.CourseID)
	if !ok || len(course.RequiredCertifications) == 0 {
		return nil
	}
	teacher, ok := rm.Teacher(slot.TeacherID)
	if !ok {
		return nil
	}

	held := make([]string, 0, len(teacher.Certifications))
	for _, c := range teacher.Certifications {
		if !c.Expired {
			held = append(held, c.Subject)
		}
	}
	if AnyCertificationMatches(course.RequiredCertifications, held) {
		if gradeRangeViolated(course, teacher) {
			return &Conflict{
				Type:            model.ConflictSubjectMismatch,
				Severity:        model.SeverityLow,
				Status:          model.ConflictActive,
				AffectedSlots:   []string{slot.ID},
				AffectedTeachers: []string{slot.TeacherID},
				AffectedCourses: []string{slot.CourseID},
				Day:             slot.Day.String(),
				Start:           slot.Start.String(),
				End:             slot.End.String(),
				DetectedAt:      now,
				ResolutionNotes: "certification subject matches but grade-level range excludes the course level",
			}
		}
		return nil
	}
	return &Conflict{
		Type:             model.ConflictSubjectMismatch,
		Severity:         severityOf(model.ConflictSubjectMismatch),
		Status:           model.ConflictActive,
		AffectedSlots:    []string{slot.ID},
		AffectedTeachers: []string{slot.TeacherID},
		AffectedCourses:  []string{slot.CourseID},
		Day:              slot.Day.String(),
		Start:            slot.Start.String(),
		End:              slot.End.String(),
		DetectedAt:       now,
	}
}

func gradeRangeViolated(course model.Course, teacher model.Teacher) bool {
	level := string(course.Level)
	for _, cert := range teacher.Certifications {
		if cert.Expired {
			continue
		}
		if !AnyCertificationMatches(course.RequiredCertifications, []string{cert.Subject}) {
			continue
		}
		if cert.GradeLow == "" && cert.GradeHigh == "" {
			return false
		}
		if GradeInRange(cert.GradeLow, cert.GradeHigh, level) {
			return false
		}
	}
	return true
}

// detectRoomType emits ROOM_TYPE_MISMATCH when the assigned room's type is
// not on the §4.1 compatibility table for the course's subject.
func detectRoomType(slot model.Slot, rm *model.ReadModel, now model.Timestamp) *Conflict {
	if !slot.HasRoom() {
		return nil
	}
	course, ok := rm.Course(slot.CourseID)
	if !ok {
		return nil
	}
	room, ok := rm.Room(slot.RoomID)
	if !ok {
		return nil
	}
	if calendar.IsRoomTypeCompatible(string(course.Subject), string(room.Type)) {
		return nil
	}
	return &Conflict{
		Type:            model.ConflictRoomTypeMismatch,
		Severity:        severityOf(model.ConflictRoomTypeMismatch),
		Status:          model.ConflictActive,
		AffectedSlots:   []string{slot.ID},
		AffectedRooms:   []string{slot.RoomID},
		AffectedCourses: []string{slot.CourseID},
		Day:             slot.Day.String(),
		Start:           slot.Start.String(),
		End:             slot.End.String(),
		DetectedAt:      now,
	}
}
