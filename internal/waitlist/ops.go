package waitlist

import (
	"fmt"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	coreerrors "github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/errors"
)

// Enroll gates and then commits an enrolment, delegating the actual
// roster mutation to schedule.State's low-level primitive once CanEnroll
// passes.
func (g *Gate) Enroll(studentID, sectionID, targetSlotID string) error {
	if ok, reason := g.CanEnroll(studentID, sectionID, targetSlotID); !ok {
		return coreerrors.Clone(coreerrors.ErrPreconditionFailed, fmt.Sprintf("waitlist: cannot enrol student %q: %s", studentID, reason))
	}
	_, err := g.state.EnrollPrimitive(targetSlotID, studentID)
	return err
}

// Unenroll removes a student from a slot's roster, ungated (the student
// already holds the seat).
func (g *Gate) Unenroll(slotID, studentID string) error {
	_, err := g.state.UnenrollPrimitive(slotID, studentID)
	return err
}

// Promote selects the highest-priority ACTIVE waitlist entry for a course
// (tie-break: earliest AddedAt, already reflected in entry Position
// ordering) and attempts to enrol it into the seat that just opened at
// targetSlotID/sectionID. If the gate rejects it, the entry is marked
// BYPASSED with a reason and the next entry is tried (spec §4.12 step 5).
func (g *Gate) Promote(courseID, sectionID, targetSlotID string) (promoted string, bypassed []string) {
	queue := g.ActiveQueue(courseID)
	for _, entry := range queue {
		if ok, reason := g.CanEnroll(entry.StudentID, sectionID, targetSlotID); ok {
			if _, err := g.state.EnrollPrimitive(targetSlotID, entry.StudentID); err != nil {
				g.markStatus(courseID, entry.StudentID, model.WaitlistBypassed, err.Error())
				bypassed = append(bypassed, entry.StudentID)
				continue
			}
			g.markStatus(courseID, entry.StudentID, model.WaitlistEnrolled, "")
			return entry.StudentID, bypassed
		} else {
			g.markStatus(courseID, entry.StudentID, model.WaitlistBypassed, reason)
			bypassed = append(bypassed, entry.StudentID)
		}
	}
	return "", bypassed
}

func (g *Gate) markStatus(courseID, studentID string, status model.WaitlistStatus, note string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	entries := g.entries[courseID]
	for i := range entries {
		if entries[i].StudentID == studentID && entries[i].Status == model.WaitlistActive {
			entries[i].Status = status
			break
		}
	}
	renumber(entries)
	g.entries[courseID] = entries
	g.state.RecordWaitlistEvent(studentID, courseID, string(status)+": "+note)
}
