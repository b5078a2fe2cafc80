package conflict

import (
	"sort"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// overlapBucket is one (key, day) group of slots swept for pairwise
// overlaps (spec §4.4: "bucket by key; within each bucket, sort by start;
// linear sweep").
type overlapBucket struct {
	key  string
	day  calendar.Day
	slot model.Slot
}

// overlappingPairs sorts a bucket's slots by start time and returns every
// pair whose intervals intersect. Buckets are small (one teacher/room/
// student-day at a time) so the O(n^2) pairwise scan inside one bucket is
// cheap; across buckets the work is linear.
func overlappingPairs(slots []model.Slot) [][2]model.Slot {
	sorted := make([]model.Slot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var pairs [][2]model.Slot
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Start >= sorted[i].End {
				break
			}
			overlaps, err := calendar.Overlap(sorted[i].Start, sorted[i].End, sorted[j].Start, sorted[j].End)
			if err != nil || !overlaps {
				continue
			}
			pairs = append(pairs, [2]model.Slot{sorted[i], sorted[j]})
		}
	}
	return pairs
}

func bucketByTeacherDay(slots []model.Slot) map[string][]model.Slot {
	buckets := make(map[string][]model.Slot)
	for _, s := range slots {
		if !s.Valid() || !s.HasTeacher() {
			continue
		}
		key := bucketKey(s.TeacherID, s.Day)
		buckets[key] = append(buckets[key], s)
	}
	return buckets
}

func bucketByRoomDay(slots []model.Slot) map[string][]model.Slot {
	buckets := make(map[string][]model.Slot)
	for _, s := range slots {
		if !s.Valid() || !s.HasRoom() {
			continue
		}
		key := bucketKey(s.RoomID, s.Day)
		buckets[key] = append(buckets[key], s)
	}
	return buckets
}

// bucketByStudentDay expands each slot's roster into one (student, day)
// membership per enrolled student, per spec §4.4.
func bucketByStudentDay(slots []model.Slot) map[string][]model.Slot {
	buckets := make(map[string][]model.Slot)
	for _, s := range slots {
		if !s.Valid() {
			continue
		}
		for _, studentID := range s.Roster {
			key := bucketKey(studentID, s.Day)
			buckets[key] = append(buckets[key], s)
		}
	}
	return buckets
}

func bucketKey(id string, day calendar.Day) string {
	return id + "|" + day.String()
}

func overlapWindow(a, b model.Slot) (start, end calendar.Clock) {
	start = a.Start
	if b.Start > start {
		start = b.Start
	}
	end = a.End
	if b.End < end {
		end = b.End
	}
	return start, end
}
