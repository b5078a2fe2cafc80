// Package waitlist is the Waitlist & Prerequisite Gate (C9): FIFO-by-
// priority enrolment with prerequisite and hold validation (spec §4.11).
// It imports internal/schedule and internal/model, never the reverse, so
// C3 stays ignorant of C9's gating rules (see DESIGN.md).
package waitlist

import (
	"sort"
	"sync"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// Gate wraps a schedule.State and read-model with the C9 enrolment rules.
type Gate struct {
	state *schedule.State
	rm    *model.ReadModel
	now   model.Timekeeper

	mu      sync.Mutex
	entries map[string][]model.WaitlistEntry // keyed by course id
}

// NewGate constructs a Gate over a schedule state and read-model snapshot.
func NewGate(state *schedule.State, rm *model.ReadModel, now model.Timekeeper) *Gate {
	return &Gate{
		state:   state,
		rm:      rm,
		now:     now,
		entries: make(map[string][]model.WaitlistEntry),
	}
}

// Add appends a new ACTIVE waitlist entry for (studentID, courseID) to the
// course's queue and returns it carrying its dense position after the
// queue is renumbered.
func (g *Gate) Add(studentID, courseID string, priority float64) model.WaitlistEntry {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry := model.WaitlistEntry{
		ID:        courseID + ":" + studentID,
		StudentID: studentID,
		CourseID:  courseID,
		Priority:  priority,
		Status:    model.WaitlistActive,
		AddedAt:   g.now.Now(),
	}
	g.entries[courseID] = append(g.entries[courseID], entry)
	renumber(g.entries[courseID])
	entry = g.entries[courseID][len(g.entries[courseID])-1]
	g.state.RecordWaitlistEvent(studentID, courseID, "added to waitlist")
	return entry
}

// renumber reassigns dense, strictly increasing positions (starting at 1)
// to a course's ACTIVE entries, ordered by descending priority with
// earliest-added-at tie-break (spec §3 invariant 8).
func renumber(entries []model.WaitlistEntry) {
	active := make([]int, 0, len(entries))
	for i, e := range entries {
		if e.Status == model.WaitlistActive {
			active = append(active, i)
		}
	}
	sort.SliceStable(active, func(a, b int) bool {
		ea, eb := entries[active[a]], entries[active[b]]
		if ea.Priority != eb.Priority {
			return ea.Priority > eb.Priority
		}
		return ea.AddedAt.Before(eb.AddedAt)
	})
	for pos, idx := range active {
		entries[idx].Position = pos + 1
	}
}

// ActiveQueue returns a course's ACTIVE waitlist entries in position order.
func (g *Gate) ActiveQueue(courseID string) []model.WaitlistEntry {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []model.WaitlistEntry
	for _, e := range g.entries[courseID] {
		if e.Status == model.WaitlistActive {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}
