package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

func fixtureConfig() Config {
	return Config{
		MaxPeriodsPerDay: 6,
		MinPrepMinutes:   50,
		LunchStart:       calendar.Clock(11 * 60),
		LunchEnd:         calendar.Clock(13 * 60),
		TravelThreshold:  3,
	}
}

func fixtureRoomScienceReadModel() *model.ReadModel {
	return model.NewReadModel(model.Snapshot{
		Teachers: []model.Teacher{
			{ID: "t1", Name: "A. Rivera", Active: true, Certifications: []model.Certification{{Subject: "Biology"}}},
		},
		Rooms: []model.Room{
			{ID: "r1", Capacity: 25, Type: model.RoomScienceLab, Zone: "A", Building: "Main"},
			{ID: "r2", Capacity: 25, Type: model.RoomGymnasium, Zone: "B", Building: "Annex"},
		},
		Courses: []model.Course{
			{ID: "c1", Name: "Biology", Subject: model.SubjectScience, RequiredCertifications: []string{"Biology"}, MaxStudents: 25},
		},
	})
}

func TestDetectFindsTeacherDoubleBook(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(570), End: calendar.Clock(630)})

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})

	require.NotEmpty(t, report.Conflicts)
	assert.Equal(t, model.ConflictTeacherOverlap, report.Conflicts[0].Type)
	assert.Equal(t, model.SeverityCritical, report.Conflicts[0].Severity)
}

func TestDetectDoesNotDuplicateOverlapConflicts(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(570), End: calendar.Clock(630)})

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})

	count := 0
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictTeacherOverlap {
			count++
		}
	}
	assert.Equal(t, 1, count, "one overlapping pair produces exactly one conflict")
}

func TestDetectIsIdempotent(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})

	rm := fixtureRoomScienceReadModel()
	cfg := fixtureConfig()
	now := model.Timestamp{Unix: 1000}

	first := Detect(state, rm, cfg, now)
	second := Detect(state, rm, cfg, now)
	assert.Equal(t, len(first.Conflicts), len(second.Conflicts))
}

func TestDetectFindsRoomCapacityOverflow(t *testing.T) {
	state := schedule.NewState()
	slot := model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600), Roster: make([]string, 30)}
	_, _ = state.AddSlot(slot)

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})

	var found bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictRoomCapacity {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectFindsSubjectMismatch(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})

	rm := model.NewReadModel(model.Snapshot{
		Teachers: []model.Teacher{{ID: "t1", Active: true, Certifications: []model.Certification{{Subject: "Art"}}}},
		Rooms:    []model.Room{{ID: "r1", Capacity: 30, Type: model.RoomScienceLab}},
		Courses:  []model.Course{{ID: "c1", Subject: model.SubjectScience, RequiredCertifications: []string{"Biology"}, MaxStudents: 30}},
	})

	report := Detect(state, rm, fixtureConfig(), model.Timestamp{Unix: 1000})
	var found bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictSubjectMismatch {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectFindsRoomTypeMismatch(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})
	var found bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictRoomTypeMismatch {
			found = true
		}
	}
	assert.True(t, found, "gymnasium is not compatible with a science course")
}

func TestDetectFindsExcessiveTeachingHours(t *testing.T) {
	state := schedule.NewState()
	cur := calendar.Clock(480)
	for i := 0; i < 7; i++ {
		id := "s" + string(rune('a'+i))
		_, _ = state.AddSlot(model.Slot{ID: id, TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: cur, End: cur + 50})
		cur += 60
	}

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})
	var found bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictExcessiveTeachingHours {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectFindsNoLunchBreak(t *testing.T) {
	state := schedule.NewState()
	slot := model.Slot{ID: "s1", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600), Roster: []string{"stu1"}}
	_, _ = state.AddSlot(slot)

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})
	var found bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictNoLunchBreak {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDetectSortsCanonically(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s3", TeacherID: "t1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(600), End: calendar.Clock(660)})

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})

	for i := 1; i < len(report.Conflicts); i++ {
		prev, cur := report.Conflicts[i-1], report.Conflicts[i]
		assert.LessOrEqual(t, prev.Severity.Rank(), cur.Severity.Rank(), "conflicts must sort by descending severity first")
	}
}

func TestDetectSkipsInvalidSlotsAsWarnings(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(600), End: calendar.Clock(540)})

	report := Detect(state, fixtureRoomScienceReadModel(), fixtureConfig(), model.Timestamp{Unix: 1000})
	assert.NotEmpty(t, report.Warnings)
}

func TestDetectFindsSectionOverAndUnderEnrolled(t *testing.T) {
	rm := model.NewReadModel(model.Snapshot{
		Teachers: []model.Teacher{{ID: "t1", Active: true}},
		Rooms:    []model.Room{{ID: "r1", Capacity: 30}},
		Courses:  []model.Course{{ID: "c1", MaxStudents: 20}},
		Sections: map[string][]model.CourseSection{
			"c1": {
				{ID: "sec1", CourseID: "c1", MaxEnrolment: 20, CurrentEnrolment: 25},
				{ID: "sec2", CourseID: "c1", MaxEnrolment: 20, CurrentEnrolment: 2},
			},
		},
	})
	report := Detect(schedule.NewState(), rm, fixtureConfig(), model.Timestamp{Unix: 1000})

	var over, under bool
	for _, c := range report.Conflicts {
		if c.Type == model.ConflictSectionOverEnrolled {
			over = true
		}
		if c.Type == model.ConflictSectionUnderEnrolled {
			under = true
		}
	}
	assert.True(t, over)
	assert.True(t, under)
}
