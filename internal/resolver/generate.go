package resolver

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Generate produces the ranked suggestion list for one conflict, per the
// generation rules of spec §4.6, and blends each candidate's confidence
// with the rolling success history.
func Generate(c conflict.Conflict, state *schedule.State, rm *model.ReadModel, history *SuccessHistory, cfg Config) []Suggestion {
	var raw []Suggestion
	switch c.Type {
	case model.ConflictTeacherOverlap:
		raw = generateTeacherOverlap(c, state, rm)
	case model.ConflictRoomOverlap:
		raw = generateRoomOverlap(c, state, rm)
	case model.ConflictRoomCapacity:
		raw = generateRoomCapacity(c, state, rm)
	case model.ConflictStudentOverlap:
		raw = generateStudentOverlap(c, state, rm)
	case model.ConflictSubjectMismatch:
		raw = generateSubjectMismatch(c, state, rm)
	case model.ConflictExcessiveTeachingHours, model.ConflictNoPrepPeriod:
		raw = generateWorkloadRelief(c, state, rm)
	case model.ConflictTeacherTravel:
		raw = generateTravelFix(c, state, rm)
	default:
		raw = nil
	}

	for i := range raw {
		raw[i].ID = uuid.New().String()
		raw[i].ConflictID = c.ID
		def := cfg.DefaultSuccessRates[string(raw[i].Kind)]
		raw[i].Confidence = history.Blend(string(raw[i].Kind), def) / 100
	}
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].Confidence > raw[j].Confidence })
	return raw
}

func generateTeacherOverlap(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	for _, slotID := range c.AffectedSlots {
		slot, ok := state.Slot(slotID)
		if !ok {
			continue
		}
		course, ok := rm.Course(slot.CourseID)
		if !ok {
			continue
		}
		for _, teacherID := range qualifiedFreeTeachers(state, rm, course, slot, slot.TeacherID) {
			out = append(out, changeTeacherSuggestion(slot, teacherID))
		}
		if day, start, end, ok := freeTimeForTeacher(state, slot.TeacherID, slot, rm); ok {
			out = append(out, changeTimeSuggestion(slot, day, start, end))
		}
	}
	return out
}

func generateRoomOverlap(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedSlots) == 0 {
		return out
	}
	slot, ok := state.Slot(c.AffectedSlots[0])
	if !ok {
		return out
	}
	course, _ := rm.Course(slot.CourseID)
	for _, room := range freeRoomsByAscendingSurplus(state, rm, slot, string(course.Subject), slot.Enrolled(), 3) {
		out = append(out, changeRoomSuggestion(slot, room))
	}
	return out
}

func generateRoomCapacity(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedSlots) == 0 {
		return out
	}
	slot, ok := state.Slot(c.AffectedSlots[0])
	if !ok {
		return out
	}
	course, _ := rm.Course(slot.CourseID)
	needed := slot.Enrolled() + 5
	for _, room := range freeRoomsByAscendingSurplus(state, rm, slot, string(course.Subject), needed, 3) {
		out = append(out, changeRoomSuggestion(slot, room))
	}
	out = append(out, Suggestion{
		Kind: model.SuggestSplitSection,
		Edits: []Edit{{
			Description: fmt.Sprintf("split the section serving slot %s into two smaller sections", slot.ID),
			SlotID:      slot.ID,
			Field:       "section",
			NewValue:    "split",
		}},
		EstimatedImpact:      slot.Enrolled(),
		RequiresConfirmation: true,
		apply: func(*schedule.State) error {
			return nil
		},
	})
	return out
}

func generateStudentOverlap(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedSlots) == 0 || len(c.AffectedStudents) == 0 {
		return out
	}
	slot, ok := state.Slot(c.AffectedSlots[0])
	if !ok {
		return out
	}
	studentID := c.AffectedStudents[0]
	for _, altSectionID := range rm.SectionsByCourse(slot.CourseID) {
		altSection, ok := rm.Section(altSectionID)
		if !ok || altSection.ID == slot.SectionID {
			continue
		}
		if altSection.CurrentEnrolment >= altSection.MaxEnrolment {
			continue
		}
		out = append(out, Suggestion{
			Kind: model.SuggestReassignStudent,
			Edits: []Edit{{
				Description: fmt.Sprintf("move student %s to section %s of the same course", studentID, altSection.ID),
				SlotID:      slot.ID,
				Field:       "section",
				NewValue:    altSection.ID,
			}},
			EstimatedImpact: 1,
			apply: func(st *schedule.State) error {
				if _, err := st.UnenrollPrimitive(slot.ID, studentID); err != nil {
					return err
				}
				for _, s := range st.Snapshot() {
					if s.SectionID != altSection.ID {
						continue
					}
					if _, err := st.EnrollPrimitive(s.ID, studentID); err != nil {
						return err
					}
				}
				return nil
			},
		})
	}
	return out
}

func generateSubjectMismatch(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedSlots) == 0 {
		return out
	}
	slot, ok := state.Slot(c.AffectedSlots[0])
	if !ok {
		return out
	}
	course, ok := rm.Course(slot.CourseID)
	if !ok {
		return out
	}
	for _, teacherID := range qualifiedFreeTeachers(state, rm, course, slot, slot.TeacherID) {
		out = append(out, changeTeacherSuggestion(slot, teacherID))
	}
	return out
}

func generateWorkloadRelief(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedTeachers) == 0 {
		return out
	}
	teacherID := c.AffectedTeachers[0]
	out = append(out, Suggestion{
		Kind: model.SuggestAddCoTeacher,
		Edits: []Edit{{
			Description: fmt.Sprintf("add a co-teacher to share %s's load on %s", teacherID, c.Day),
			NewValue:    teacherID,
		}},
		EstimatedImpact:      len(c.AffectedSlots),
		RequiresConfirmation: true,
		apply:                func(*schedule.State) error { return nil },
	})
	for _, slotID := range c.AffectedSlots {
		slot, ok := state.Slot(slotID)
		if !ok {
			continue
		}
		course, ok := rm.Course(slot.CourseID)
		if !ok {
			continue
		}
		for _, alt := range qualifiedFreeTeachers(state, rm, course, slot, teacherID) {
			out = append(out, changeTeacherSuggestion(slot, alt))
		}
	}
	return out
}

func generateTravelFix(c conflict.Conflict, state *schedule.State, rm *model.ReadModel) []Suggestion {
	var out []Suggestion
	if len(c.AffectedSlots) < 2 || len(c.AffectedRooms) == 0 {
		return out
	}
	slot, ok := state.Slot(c.AffectedSlots[1])
	if !ok {
		return out
	}
	adjacentRoom, ok := rm.Room(c.AffectedRooms[0])
	if !ok {
		return out
	}
	for _, roomID := range rm.RoomsByZone(adjacentRoom.Zone) {
		room, ok := rm.Room(roomID)
		if !ok || room.ID == slot.RoomID {
			continue
		}
		if !isRoomFree(state, room.ID, slot, "") {
			continue
		}
		out = append(out, changeRoomSuggestion(slot, room))
	}
	return out
}

func changeTeacherSuggestion(slot model.Slot, teacherID string) Suggestion {
	return Suggestion{
		Kind: model.SuggestChangeTeacher,
		Edits: []Edit{{
			Description: fmt.Sprintf("reassign slot %s to teacher %s", slot.ID, teacherID),
			SlotID:      slot.ID,
			Field:       "teacher",
			NewValue:    teacherID,
		}},
		EstimatedImpact: 1,
		apply: func(st *schedule.State) error {
			_, err := st.MutateSlot(slot.ID, func(s model.Slot) model.Slot {
				s.TeacherID = teacherID
				return s
			})
			return err
		},
	}
}

func changeRoomSuggestion(slot model.Slot, room model.Room) Suggestion {
	return Suggestion{
		Kind: model.SuggestChangeRoom,
		Edits: []Edit{{
			Description: fmt.Sprintf("reassign slot %s to room %s", slot.ID, room.ID),
			SlotID:      slot.ID,
			Field:       "room",
			NewValue:    room.ID,
		}},
		EstimatedImpact: 1,
		apply: func(st *schedule.State) error {
			_, err := st.MutateSlot(slot.ID, func(s model.Slot) model.Slot {
				s.RoomID = room.ID
				return s
			})
			return err
		},
	}
}

func changeTimeSuggestion(slot model.Slot, day calendar.Day, start, end calendar.Clock) Suggestion {
	return Suggestion{
		Kind: model.SuggestChangeTime,
		Edits: []Edit{{
			Description: fmt.Sprintf("move slot %s to %s %s-%s", slot.ID, day, start, end),
			SlotID:      slot.ID,
			Field:       "time",
			NewValue:    fmt.Sprintf("%s %s-%s", day, start, end),
		}},
		EstimatedImpact: 1,
		apply: func(st *schedule.State) error {
			_, err := st.MutateSlot(slot.ID, func(s model.Slot) model.Slot {
				s.Day = day
				s.Start = start
				s.End = end
				return s
			})
			return err
		},
	}
}

func qualifiedFreeTeachers(state *schedule.State, rm *model.ReadModel, course model.Course, slot model.Slot, excludeTeacherID string) []string {
	var out []string
	for _, t := range rm.AllTeachers() {
		if t.ID == excludeTeacherID || !t.Active {
			continue
		}
		held := make([]string, 0, len(t.Certifications))
		for _, cert := range t.Certifications {
			if !cert.Expired {
				held = append(held, cert.Subject)
			}
		}
		if len(course.RequiredCertifications) > 0 && !conflict.AnyCertificationMatches(course.RequiredCertifications, held) {
			continue
		}
		if isTeacherFree(state, t.ID, slot, slot.ID) {
			out = append(out, t.ID)
		}
	}
	sort.Strings(out)
	return out
}

func isTeacherFree(state *schedule.State, teacherID string, slot model.Slot, excludeSlotID string) bool {
	for _, s := range state.Snapshot() {
		if s.ID == excludeSlotID || s.TeacherID != teacherID || s.Day != slot.Day {
			continue
		}
		if overlaps, err := calendar.Overlap(s.Start, s.End, slot.Start, slot.End); err == nil && overlaps {
			return false
		}
	}
	return true
}

func isRoomFree(state *schedule.State, roomID string, slot model.Slot, excludeSlotID string) bool {
	for _, s := range state.Snapshot() {
		if s.ID == excludeSlotID || s.RoomID != roomID || s.Day != slot.Day {
			continue
		}
		if overlaps, err := calendar.Overlap(s.Start, s.End, slot.Start, slot.End); err == nil && overlaps {
			return false
		}
	}
	return true
}

// freeRoomsByAscendingSurplus returns up to limit rooms compatible with
// subject, free at slot's time, with capacity >= minCapacity, sorted by
// ascending capacity surplus (spec §4.6 ROOM_OVERLAP/ROOM_CAPACITY rules).
func freeRoomsByAscendingSurplus(state *schedule.State, rm *model.ReadModel, slot model.Slot, subject string, minCapacity, limit int) []model.Room {
	var candidates []model.Room
	for _, c := range calendar.CompatibleRoomTypes(subject) {
		for _, roomID := range rm.RoomsByType(model.RoomType(c)) {
			room, ok := rm.Room(roomID)
			if !ok || room.Capacity < minCapacity {
				continue
			}
			if !isRoomFree(state, room.ID, slot, slot.ID) {
				continue
			}
			candidates = append(candidates, room)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return (candidates[i].Capacity - minCapacity) < (candidates[j].Capacity - minCapacity)
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// freeTimeForTeacher looks for a (day, period-aligned) gap in the
// teacher's own schedule matching slot's duration, elsewhere than slot's
// current day/time.
func freeTimeForTeacher(state *schedule.State, teacherID string, slot model.Slot, rm *model.ReadModel) (calendar.Day, calendar.Clock, calendar.Clock, bool) {
	duration := int(slot.End) - int(slot.Start)
	for day := calendar.Sunday; day <= calendar.Saturday; day++ {
		if day == slot.Day {
			continue
		}
		candidate := model.Slot{Day: day, Start: slot.Start, End: calendar.Clock(int(slot.Start) + duration)}
		if isTeacherFree(state, teacherID, candidate, slot.ID) {
			return day, candidate.Start, candidate.End, true
		}
	}
	return 0, 0, 0, false
}
