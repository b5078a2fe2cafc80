package waitlist

import (
	"fmt"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// CanEnroll implements every gate of spec §4.11: the student must be
// active, the section must be OPEN or SCHEDULED, any IEP accommodation
// review must not be overdue, every prerequisite group must be satisfied,
// and the new slot must not collide with an existing enrolment on the same
// day. When both slots carry an assigned period only the period numbers are
// compared, so slots in different periods never collide; when either slot
// has no period, their time intervals are compared instead (see the Open
// Question notes in DESIGN.md).
func (g *Gate) CanEnroll(studentID, sectionID, targetSlotID string) (bool, string) {
	student, ok := g.rm.Student(studentID)
	if !ok {
		return false, "student not found in read-model"
	}
	if !student.Active {
		return false, "student is not active"
	}

	section, ok := g.rm.Section(sectionID)
	if !ok {
		return false, "section not found in read-model"
	}
	if section.Status != model.SectionOpen && section.Status != model.SectionScheduled {
		return false, fmt.Sprintf("section status %s does not accept enrolment", section.Status)
	}

	if student.HasIEP && student.AccommodationReview != nil && g.now.Now().Unix > student.AccommodationReview.Unix {
		return false, "IEP accommodation review is overdue"
	}

	for _, group := range g.rm.PrereqsOf(section.CourseID) {
		if !groupSatisfied(student, group) {
			return false, "prerequisite group unsatisfied"
		}
	}

	targetSlot, ok := g.state.Slot(targetSlotID)
	if !ok {
		return false, "target slot not found"
	}
	if collides, reason := g.collidesWithExisting(studentID, targetSlot); collides {
		return false, reason
	}

	return true, ""
}

func groupSatisfied(student model.Student, group model.PrerequisiteGroup) bool {
	for _, item := range group.Items {
		for _, h := range student.History {
			if h.CourseID == item.CourseID && h.FinalGrade >= item.MinimumGrade {
				return true
			}
		}
	}
	return false
}

// collidesWithExisting checks the student's existing enrolments on the
// target slot's day for a period or interval collision.
func (g *Gate) collidesWithExisting(studentID string, target model.Slot) (bool, string) {
	for _, slot := range g.state.Snapshot() {
		if slot.Day != target.Day || !slot.HasStudent(studentID) {
			continue
		}
		if slot.PeriodNumber != 0 && target.PeriodNumber != 0 {
			if slot.PeriodNumber == target.PeriodNumber {
				return true, "period collision with an existing enrolment"
			}
			continue
		}
		overlaps, err := calendar.Overlap(slot.Start, slot.End, target.Start, target.End)
		if err == nil && overlaps {
			return true, "time collision with an existing enrolment"
		}
	}
	return false, ""
}
