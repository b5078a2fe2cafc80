package conflict

import (
	"sort"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// detectWorkload emits EXCESSIVE_TEACHING_HOURS when a teacher's slot count
// on one day exceeds MaxPeriodsPerDay, and NO_PREP_PERIOD when no gap
// between consecutive slots reaches MinPrepMinutes (spec §4.4).
func detectWorkload(teacherID string, day string, slots []model.Slot, cfg Config, now model.Timestamp) []Conflict {
	var out []Conflict
	if len(slots) > cfg.MaxPeriodsPerDay {
		ids := slotIDs(slots)
		out = append(out, Conflict{
			Type:             model.ConflictExcessiveTeachingHours,
			Severity:         severityOf(model.ConflictExcessiveTeachingHours),
			Status:           model.ConflictActive,
			AffectedSlots:    ids,
			AffectedTeachers: []string{teacherID},
			Day:              day,
			DetectedAt:       now,
		})
	}

	sorted := make([]model.Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	hasPrep := len(sorted) <= 1
	for i := 1; i < len(sorted); i++ {
		gap := int(sorted[i].Start) - int(sorted[i-1].End)
		if gap >= cfg.MinPrepMinutes {
			hasPrep = true
			break
		}
	}
	if !hasPrep {
		out = append(out, Conflict{
			Type:             model.ConflictNoPrepPeriod,
			Severity:         severityOf(model.ConflictNoPrepPeriod),
			Status:           model.ConflictActive,
			AffectedSlots:    slotIDs(sorted),
			AffectedTeachers: []string{teacherID},
			Day:              day,
			DetectedAt:       now,
		})
	}
	return out
}

// detectLunch emits NO_LUNCH_BREAK when a student's day has no slot marked
// IsLunch that overlaps the configured lunch window.
func detectLunch(studentID string, day string, slots []model.Slot, cfg Config, now model.Timestamp) *Conflict {
	for _, s := range slots {
		if !s.IsLunch {
			continue
		}
		if s.Start < cfg.LunchEnd && cfg.LunchStart < s.End {
			return nil
		}
	}
	return &Conflict{
		Type:             model.ConflictNoLunchBreak,
		Severity:         severityOf(model.ConflictNoLunchBreak),
		Status:           model.ConflictActive,
		AffectedSlots:    slotIDs(slots),
		AffectedStudents: []string{studentID},
		Day:              day,
		DetectedAt:       now,
	}
}

// travelPenalty scores the room-change cost between two of a teacher's
// consecutive slots: 0 same room, 1 same zone, 3 same building different
// zone, 5 different building (spec §4.6's step-score scale, reused here
// as the §4.4 travel-detection penalty function).
func travelPenalty(a, b model.Room) int {
	switch {
	case a.ID == b.ID:
		return 0
	case a.Zone != "" && a.Zone == b.Zone:
		return 1
	case a.Building == b.Building:
		return 3
	default:
		return 5
	}
}

// detectTravel emits TEACHER_TRAVEL when consecutive same-day slots for a
// teacher carry a travel penalty at or above the configured threshold.
func detectTravel(teacherID, day string, slots []model.Slot, rm *model.ReadModel, cfg Config, now model.Timestamp) []Conflict {
	sorted := make([]model.Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var out []Conflict
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if !prev.HasRoom() || !cur.HasRoom() {
			continue
		}
		roomA, ok := rm.Room(prev.RoomID)
		if !ok {
			continue
		}
		roomB, ok := rm.Room(cur.RoomID)
		if !ok {
			continue
		}
		if travelPenalty(roomA, roomB) < cfg.TravelThreshold {
			continue
		}
		out = append(out, Conflict{
			Type:             model.ConflictTeacherTravel,
			Severity:         severityOf(model.ConflictTeacherTravel),
			Status:           model.ConflictActive,
			AffectedSlots:    []string{prev.ID, cur.ID},
			AffectedTeachers: []string{teacherID},
			AffectedRooms:    []string{prev.RoomID, cur.RoomID},
			Day:              day,
			DetectedAt:       now,
		})
	}
	return out
}

func slotIDs(slots []model.Slot) []string {
	ids := make([]string, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}
