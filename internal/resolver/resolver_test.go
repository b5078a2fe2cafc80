package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

func fixtureResolverConfig() Config {
	return Config{
		DefaultSuccessRates:      map[string]float64{string(model.SuggestChangeTeacher): 80, string(model.SuggestChangeRoom): 80},
		AutoApplyConfidenceThres: 70,
		MaxAutoResolveIterations: 20,
		DetectorConfig: conflict.Config{
			MaxPeriodsPerDay: 8,
			MinPrepMinutes:   50,
			LunchStart:       calendar.Clock(11 * 60),
			LunchEnd:         calendar.Clock(13 * 60),
			TravelThreshold:  3,
		},
		ConstraintWeights: map[string]float64{
			string(model.ConflictTeacherOverlap): 100,
			string(model.ConflictRoomOverlap):    100,
			string(model.ConflictStudentOverlap): 100,
		},
	}
}

func fixtureResolverReadModel() *model.ReadModel {
	return model.NewReadModel(model.Snapshot{
		Teachers: []model.Teacher{
			{ID: "t1", Active: true, Certifications: []model.Certification{{Subject: "Biology"}}},
			{ID: "t2", Active: true, Certifications: []model.Certification{{Subject: "Biology"}}},
		},
		Rooms: []model.Room{
			{ID: "r1", Capacity: 30, Type: model.RoomScienceLab, Zone: "A"},
			{ID: "r2", Capacity: 30, Type: model.RoomScienceLab, Zone: "A"},
		},
		Courses: []model.Course{
			{ID: "c1", Subject: model.SubjectScience, RequiredCertifications: []string{"Biology"}, MaxStudents: 30},
		},
	})
}

func TestGenerateTeacherOverlapOffersFreeTeacher(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(570), End: calendar.Clock(630)})

	c := conflict.Conflict{ID: "conf-1", Type: model.ConflictTeacherOverlap, Severity: model.SeverityCritical, Status: model.ConflictActive, AffectedSlots: []string{"s1", "s2"}}
	history := NewSuccessHistory()
	suggestions := Generate(c, state, fixtureResolverReadModel(), history, fixtureResolverConfig())

	require.NotEmpty(t, suggestions)
	var sawChangeTeacher bool
	for _, s := range suggestions {
		if s.Kind == model.SuggestChangeTeacher {
			sawChangeTeacher = true
		}
	}
	assert.True(t, sawChangeTeacher)
}

func TestValidateRejectsSuggestionIntroducingNewCritical(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t2", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})

	target := conflict.Conflict{ID: "conf-1", Type: model.ConflictTeacherOverlap, Severity: model.SeverityCritical, Status: model.ConflictActive, AffectedSlots: []string{"s1"}}
	badSuggestion := changeTeacherSuggestion(model.Slot{ID: "s1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)}, "t2")

	ok, _ := Validate(badSuggestion, target, state, fixtureResolverReadModel(), fixtureResolverConfig(), model.Timestamp{Unix: 1})
	assert.False(t, ok, "reassigning into another teacher's existing slot must not validate")
}

func TestSuccessHistoryBlendFallsBackToDefaultWithoutHistory(t *testing.T) {
	h := NewSuccessHistory()
	assert.Equal(t, 80.0, h.Blend("CHANGE_TEACHER", 80))
}

func TestSuccessHistoryBlendAveragesWithRollingRate(t *testing.T) {
	h := NewSuccessHistory()
	for i := 0; i < 10; i++ {
		h.Record("CHANGE_TEACHER", i < 6)
	}
	blended := h.Blend("CHANGE_TEACHER", 80)
	assert.InDelta(t, (80.0+60.0)/2, blended, 0.001)
}

func TestSuccessHistoryTrimsToWindow(t *testing.T) {
	h := NewSuccessHistory()
	for i := 0; i < 150; i++ {
		h.Record("CHANGE_ROOM", true)
	}
	assert.Equal(t, 100.0, h.Rate("CHANGE_ROOM"))
}

func TestPriorityScoreBoundedAndMonotonicInSeverity(t *testing.T) {
	low := conflict.Conflict{Severity: model.SeverityLow, Type: model.ConflictTeacherTravel}
	critical := conflict.Conflict{Severity: model.SeverityCritical, Type: model.ConflictTeacherTravel}

	lowScore := PriorityScore(low, 0, 0)
	criticalScore := PriorityScore(critical, 0, 0)

	assert.Greater(t, criticalScore, lowScore)
	assert.LessOrEqual(t, criticalScore, 100.0)
	assert.GreaterOrEqual(t, lowScore, 0.0)
}

func TestAutoResolveScenarioResolvesTeacherOverlapButNotStudentOverlap(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(570), End: calendar.Clock(630)})
	_, _ = state.AddSlot(model.Slot{ID: "s3", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Tuesday, Start: calendar.Clock(540), End: calendar.Clock(600), Roster: []string{"stu1"}})
	_, _ = state.AddSlot(model.Slot{ID: "s4", TeacherID: "t2", RoomID: "r2", CourseID: "c1", Day: calendar.Tuesday, Start: calendar.Clock(540), End: calendar.Clock(600), Roster: []string{"stu1"}})
	_, _ = state.AddSlot(model.Slot{ID: "s5", Day: calendar.Tuesday, Start: calendar.Clock(690), End: calendar.Clock(720), Roster: []string{"stu1"}, IsLunch: true})

	rm := fixtureResolverReadModel()
	cfg := fixtureResolverConfig()
	cfg.DefaultSuccessRates = map[string]float64{string(model.SuggestChangeTeacher): 90}
	history := NewSuccessHistory()

	result := AutoResolve(state, rm, history, cfg, model.Timestamp{Unix: 1000}, nil)

	assert.Equal(t, 1, result.ResolvedCount, "teacher overlap resolves; student overlap has no suggestion above threshold")
	assert.Equal(t, 1, result.Remaining)
}

type fakeRecorder struct {
	applied  []string
	rejected []string
}

func (r *fakeRecorder) RecordSuggestionApplied(kind string)  { r.applied = append(r.applied, kind) }
func (r *fakeRecorder) RecordSuggestionRejected(kind string) { r.rejected = append(r.rejected, kind) }

func TestAutoResolveRecordsAppliedSuggestionsThroughRecorder(t *testing.T) {
	state := schedule.NewState()
	_, _ = state.AddSlot(model.Slot{ID: "s1", TeacherID: "t1", RoomID: "r1", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(540), End: calendar.Clock(600)})
	_, _ = state.AddSlot(model.Slot{ID: "s2", TeacherID: "t1", RoomID: "r2", CourseID: "c1", Day: calendar.Monday, Start: calendar.Clock(570), End: calendar.Clock(630)})

	rm := fixtureResolverReadModel()
	cfg := fixtureResolverConfig()
	cfg.DefaultSuccessRates = map[string]float64{string(model.SuggestChangeTeacher): 90}
	recorder := &fakeRecorder{}
	cfg.Recorder = recorder
	history := NewSuccessHistory()

	result := AutoResolve(state, rm, history, cfg, model.Timestamp{Unix: 1000}, nil)

	require.Equal(t, 1, result.ResolvedCount)
	assert.Contains(t, recorder.applied, string(model.SuggestChangeTeacher), "a committed suggestion is recorded as applied")
	assert.Empty(t, recorder.rejected)
}
