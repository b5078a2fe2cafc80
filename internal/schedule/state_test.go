package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

func fixtureSlot(id string) model.Slot {
	return model.Slot{
		ID: id, CourseID: "c1", SectionID: "sec1", TeacherID: "t1", RoomID: "r1",
		Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(590), PeriodNumber: 1,
	}
}

func TestAddSlotRejectsDuplicateID(t *testing.T) {
	s := NewState()
	_, err := s.AddSlot(fixtureSlot("s1"))
	require.NoError(t, err)

	_, err = s.AddSlot(fixtureSlot("s1"))
	assert.Error(t, err)
}

func TestAddSlotRejectsEmptyID(t *testing.T) {
	s := NewState()
	_, err := s.AddSlot(model.Slot{})
	assert.Error(t, err)
}

func TestMutateSlotPreservesID(t *testing.T) {
	s := NewState()
	_, err := s.AddSlot(fixtureSlot("s1"))
	require.NoError(t, err)

	_, err = s.MutateSlot("s1", func(slot model.Slot) model.Slot {
		slot.ID = "tampered"
		slot.RoomID = "r2"
		return slot
	})
	require.NoError(t, err)

	got, ok := s.Slot("s1")
	require.True(t, ok)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "r2", got.RoomID)
}

func TestEnrollPrimitiveRejectsDuplicateEnrolment(t *testing.T) {
	s := NewState()
	_, err := s.AddSlot(fixtureSlot("s1"))
	require.NoError(t, err)

	_, err = s.EnrollPrimitive("s1", "stu1")
	require.NoError(t, err)

	_, err = s.EnrollPrimitive("s1", "stu1")
	assert.Error(t, err)
}

func TestUnenrollPrimitiveRemovesOnlyOneOccurrence(t *testing.T) {
	s := NewState()
	_, err := s.AddSlot(fixtureSlot("s1"))
	require.NoError(t, err)
	_, _ = s.EnrollPrimitive("s1", "stu1")

	_, err = s.UnenrollPrimitive("s1", "stu1")
	require.NoError(t, err)

	slot, _ := s.Slot("s1")
	assert.Equal(t, 0, slot.Enrolled())

	_, err = s.UnenrollPrimitive("s1", "stu1")
	assert.Error(t, err, "unenrolling a student not on the roster is an error")
}

func TestWriteLogRecordsEveryMutation(t *testing.T) {
	s := NewState()
	_, _ = s.AddSlot(fixtureSlot("s1"))
	_, _ = s.EnrollPrimitive("s1", "stu1")
	_, _ = s.RemoveSlot("s1")

	entries := s.WriteLog()
	require.Len(t, entries, 3)
	assert.Equal(t, EventSlotAdded, entries[0].Kind)
	assert.Equal(t, EventEnrollmentCreated, entries[1].Kind)
	assert.Equal(t, EventSlotRemoved, entries[2].Kind)
}

func TestNewStateFromSeedsWithoutWriteLogEntries(t *testing.T) {
	s := NewStateFrom([]model.Slot{fixtureSlot("s1"), fixtureSlot("s2")})
	assert.Len(t, s.Snapshot(), 2)
	assert.Equal(t, 0, len(s.WriteLog()), "seeding is not itself a logged mutation")
}
