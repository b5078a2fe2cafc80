package conflict

import (
	"fmt"
	"sort"
	"strings"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Detect runs every check of spec §4.4 over a consistent state snapshot
// and returns a deterministic, canonically-sorted Report. It is a pure
// function of (state, read-model, config): calling it twice on the same
// state yields the same conflicts in the same order.
func Detect(state *schedule.State, rm *model.ReadModel, cfg Config, now model.Timestamp) Report {
	slots := state.Snapshot()
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })

	var report Report
	var valid []model.Slot
	for _, s := range slots {
		if !s.Valid() {
			report.Warnings = append(report.Warnings, fmt.Sprintf("slot %q skipped: missing or malformed day/time", s.ID))
			continue
		}
		valid = append(valid, s)
	}

	report.Conflicts = append(report.Conflicts, sweepOverlaps(valid, model.ConflictTeacherOverlap, bucketByTeacherDay(valid), func(s model.Slot) []string { return []string{s.TeacherID} }, nil, now)...)
	report.Conflicts = append(report.Conflicts, sweepOverlaps(valid, model.ConflictRoomOverlap, bucketByRoomDay(valid), nil, func(s model.Slot) []string { return []string{s.RoomID} }, now)...)
	report.Conflicts = append(report.Conflicts, sweepStudentOverlaps(valid, now)...)

	for _, s := range valid {
		if c := detectCapacity(s, rm, now); c != nil {
			report.Conflicts = append(report.Conflicts, *c)
		}
		if c := detectQualification(s, rm, now); c != nil {
			report.Conflicts = append(report.Conflicts, *c)
		}
		if c := detectRoomType(s, rm, now); c != nil {
			report.Conflicts = append(report.Conflicts, *c)
		}
	}

	report.Conflicts = append(report.Conflicts, detectWorkloadAndTravel(valid, rm, cfg, now)...)
	report.Conflicts = append(report.Conflicts, detectLunchBreaks(valid, cfg, now)...)
	report.Conflicts = append(report.Conflicts, detectSectionEnrolment(rm, now)...)

	sortCanonical(report.Conflicts)
	for i := range report.Conflicts {
		report.Conflicts[i].ID = fmt.Sprintf("conflict-%04d", i+1)
	}
	return report
}

// sweepOverlaps generalises the teacher/room overlap sweep: buckets are
// already grouped by (key, day); each overlapping pair found within a
// bucket produces exactly one conflict (spec §8 "no duplicates").
func sweepOverlaps(all []model.Slot, conflictType model.ConflictType, buckets map[string][]model.Slot, teachersOf, roomsOf func(model.Slot) []string, now model.Timestamp) []Conflict {
	var out []Conflict
	for _, bucketSlots := range buckets {
		for _, pair := range overlappingPairs(bucketSlots) {
			a, b := pair[0], pair[1]
			start, end := overlapWindow(a, b)
			c := Conflict{
				Type:          conflictType,
				Severity:      severityOf(conflictType),
				Status:        model.ConflictActive,
				AffectedSlots: []string{a.ID, b.ID},
				Day:           a.Day.String(),
				Start:         start.String(),
				End:           end.String(),
				DetectedAt:    now,
			}
			if teachersOf != nil {
				c.AffectedTeachers = dedupe(append(teachersOf(a), teachersOf(b)...))
			}
			if roomsOf != nil {
				c.AffectedRooms = dedupe(append(roomsOf(a), roomsOf(b)...))
			}
			out = append(out, c)
		}
	}
	return out
}

func sweepStudentOverlaps(slots []model.Slot, now model.Timestamp) []Conflict {
	var out []Conflict
	for key, bucketSlots := range bucketByStudentDay(slots) {
		studentID, _ := splitBucketKey(key)
		for _, pair := range overlappingPairs(bucketSlots) {
			a, b := pair[0], pair[1]
			start, end := overlapWindow(a, b)
			out = append(out, Conflict{
				Type:             model.ConflictStudentOverlap,
				Severity:         severityOf(model.ConflictStudentOverlap),
				Status:           model.ConflictActive,
				AffectedSlots:    []string{a.ID, b.ID},
				AffectedStudents: []string{studentID},
				Day:              a.Day.String(),
				Start:            start.String(),
				End:              end.String(),
				DetectedAt:       now,
			})
		}
	}
	return out
}

func detectWorkloadAndTravel(slots []model.Slot, rm *model.ReadModel, cfg Config, now model.Timestamp) []Conflict {
	var out []Conflict
	for key, bucketSlots := range bucketByTeacherDay(slots) {
		teacherID, day := splitBucketKey(key)
		out = append(out, detectWorkload(teacherID, day, bucketSlots, cfg, now)...)
		out = append(out, detectTravel(teacherID, day, bucketSlots, rm, cfg, now)...)
	}
	return out
}

func detectLunchBreaks(slots []model.Slot, cfg Config, now model.Timestamp) []Conflict {
	var out []Conflict
	for key, bucketSlots := range bucketByStudentDay(slots) {
		studentID, day := splitBucketKey(key)
		if c := detectLunch(studentID, day, bucketSlots, cfg, now); c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// detectSectionEnrolment emits SECTION_OVER_ENROLLED when a section's
// current enrolment exceeds its own cap, and SECTION_UNDER_ENROLLED when a
// section with peer sections for the same course sits well below the
// per-section target computed in §4.12 step 4.
func detectSectionEnrolment(rm *model.ReadModel, now model.Timestamp) []Conflict {
	var out []Conflict
	for _, course := range rm.AllCourses() {
		sections := rm.SectionsOf(course.ID)
		for _, sec := range sections {
			if sec.MaxEnrolment > 0 && sec.CurrentEnrolment > sec.MaxEnrolment {
				out = append(out, Conflict{
					Type:            model.ConflictSectionOverEnrolled,
					Severity:        severityOf(model.ConflictSectionOverEnrolled),
					Status:          model.ConflictActive,
					AffectedCourses: []string{course.ID},
					DetectedAt:      now,
					ResolutionNotes: sec.ID,
				})
			}
		}
		if len(sections) < 2 {
			continue
		}
		total := 0
		for _, sec := range sections {
			total += sec.CurrentEnrolment
		}
		target := total / len(sections)
		for _, sec := range sections {
			if target > 0 && sec.CurrentEnrolment < target/2 {
				out = append(out, Conflict{
					Type:            model.ConflictSectionUnderEnrolled,
					Severity:        severityOf(model.ConflictSectionUnderEnrolled),
					Status:          model.ConflictActive,
					AffectedCourses: []string{course.ID},
					DetectedAt:      now,
					ResolutionNotes: sec.ID,
				})
			}
		}
	}
	return out
}

func splitBucketKey(key string) (id, day string) {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '|' {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// sortCanonical orders conflicts by the §5 canonical sort key: severity
// desc, type asc, day asc, start-time asc, primary-slot-id asc, then by
// affected entities so ties never fall back to map-iteration order.
func sortCanonical(conflicts []Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if primarySlot(a) != primarySlot(b) {
			return primarySlot(a) < primarySlot(b)
		}
		return tieKey(a) < tieKey(b)
	})
}

// tieKey joins a conflict's affected-entity lists into one comparable key.
func tieKey(c Conflict) string {
	lists := [][]string{c.AffectedSlots, c.AffectedStudents, c.AffectedTeachers, c.AffectedRooms, c.AffectedCourses, {c.ResolutionNotes}}
	parts := make([]string, len(lists))
	for i, l := range lists {
		parts[i] = strings.Join(l, ",")
	}
	return strings.Join(parts, "|")
}

func primarySlot(c Conflict) string {
	if len(c.AffectedSlots) == 0 {
		return ""
	}
	return c.AffectedSlots[0]
}
