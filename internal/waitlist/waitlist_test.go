package waitlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

type fakeClock struct{ t model.Timestamp }

func (f fakeClock) Now() model.Timestamp { return f.t }

func fixtureGate() (*Gate, *schedule.State) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "slot1", CourseID: "c1", SectionID: "sec1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600), PeriodNumber: 1})
	_, _ = state.AddSlot(model.Slot{ID: "slot2", CourseID: "c1", SectionID: "sec1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600), PeriodNumber: 1})

	rm := model.NewReadModel(model.Snapshot{
		Students: []model.Student{
			{ID: "stu1", Active: true, Grade: "9"},
			{ID: "stu-inactive", Active: false, Grade: "9"},
		},
		Sections: map[string][]model.CourseSection{
			"c1": {{ID: "sec1", CourseID: "c1", Status: model.SectionOpen, MaxEnrolment: 30}},
		},
	})
	return NewGate(state, rm, fakeClock{t: model.Timestamp{Unix: 100}}), state
}

func TestAddMaintainsDensePositionsByPriorityThenAge(t *testing.T) {
	g, _ := fixtureGate()
	g.Add("stu-low", "c1", 1)
	g.Add("stu-high", "c1", 10)
	g.Add("stu-mid", "c1", 5)

	queue := g.ActiveQueue("c1")
	require.Len(t, queue, 3)
	assert.Equal(t, "stu-high", queue[0].StudentID)
	assert.Equal(t, 1, queue[0].Position)
	assert.Equal(t, "stu-mid", queue[1].StudentID)
	assert.Equal(t, "stu-low", queue[2].StudentID)
	assert.Equal(t, 3, queue[2].Position)
}

func TestCanEnrollRejectsInactiveStudent(t *testing.T) {
	g, _ := fixtureGate()
	ok, reason := g.CanEnroll("stu-inactive", "sec1", "slot1")
	assert.False(t, ok)
	assert.Contains(t, reason, "not active")
}

func TestCanEnrollRejectsClosedSection(t *testing.T) {
	g, _ := fixtureGate()
	g.rm = model.NewReadModel(model.Snapshot{
		Students: []model.Student{{ID: "stu1", Active: true}},
		Sections: map[string][]model.CourseSection{"c1": {{ID: "sec1", CourseID: "c1", Status: model.SectionClosed}}},
	})
	ok, reason := g.CanEnroll("stu1", "sec1", "slot1")
	assert.False(t, ok)
	assert.Contains(t, reason, "does not accept enrolment")
}

func TestCanEnrollRejectsOverdueIEPReview(t *testing.T) {
	g, _ := fixtureGate()
	g.rm = model.NewReadModel(model.Snapshot{
		Students: []model.Student{{ID: "stu1", Active: true, HasIEP: true, AccommodationReview: &model.Timestamp{Unix: 10}}},
		Sections: map[string][]model.CourseSection{"c1": {{ID: "sec1", CourseID: "c1", Status: model.SectionOpen}}},
	})
	ok, reason := g.CanEnroll("stu1", "sec1", "slot1")
	assert.False(t, ok)
	assert.Contains(t, reason, "IEP")
}

func TestCanEnrollRejectsUnsatisfiedPrerequisite(t *testing.T) {
	g, _ := fixtureGate()
	g.rm = model.NewReadModel(model.Snapshot{
		Students: []model.Student{{ID: "stu1", Active: true}},
		Sections: map[string][]model.CourseSection{"c1": {{ID: "sec1", CourseID: "c1", Status: model.SectionOpen}}},
		Prereqs: map[string][]model.PrerequisiteGroup{
			"c1": {{Items: []model.PrereqItem{{CourseID: "c0", MinimumGrade: 70}}}},
		},
	})
	ok, reason := g.CanEnroll("stu1", "sec1", "slot1")
	assert.False(t, ok)
	assert.Contains(t, reason, "prerequisite")
}

func TestCanEnrollRejectsPeriodCollisionWithExistingEnrolment(t *testing.T) {
	g, state := fixtureGate()
	_, err := state.EnrollPrimitive("slot2", "stu1")
	require.NoError(t, err)

	ok, reason := g.CanEnroll("stu1", "sec1", "slot1")
	assert.False(t, ok)
	assert.Contains(t, reason, "period collision")
}

func TestEnrollSucceedsAndUnenrollReversesIt(t *testing.T) {
	g, state := fixtureGate()
	require.NoError(t, g.Enroll("stu1", "sec1", "slot1"))

	slot, _ := state.Slot("slot1")
	assert.True(t, slot.HasStudent("stu1"))

	require.NoError(t, g.Unenroll("slot1", "stu1"))
	slot, _ = state.Slot("slot1")
	assert.False(t, slot.HasStudent("stu1"))
}

func TestPromoteSkipsBypassedAndEnrollsNextEligible(t *testing.T) {
	g, _ := fixtureGate()
	g.Add("stu-inactive", "c1", 10)
	g.Add("stu1", "c1", 5)

	promoted, bypassed := g.Promote("c1", "sec1", "slot1")

	assert.Equal(t, "stu1", promoted)
	assert.Contains(t, bypassed, "stu-inactive")

	queue := g.ActiveQueue("c1")
	assert.Empty(t, queue, "both entries left the active queue: one enrolled, one bypassed")
}

func TestPromoteReturnsEmptyWhenAllCandidatesAreBypassed(t *testing.T) {
	g, _ := fixtureGate()
	g.Add("stu-inactive", "c1", 10)

	promoted, bypassed := g.Promote("c1", "sec1", "slot1")
	assert.Empty(t, promoted)
	assert.Len(t, bypassed, 1)
}
