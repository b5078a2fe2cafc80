package placement

import (
	"sort"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/schedule"
)

// BalanceResult reports what one balancing pass did.
type BalanceResult struct {
	Moves      int
	Iterations int
	Converged  bool
}

// BalanceSections implements spec §4.12 step 4: for each course with at
// least BalanceMinSections sections, move students (real roster entries,
// per the Open Question decision in DESIGN.md) from the most over-enrolled
// section to the most under-enrolled, capped at BalanceMaxIterations,
// stopping when no move would reduce the max-min spread.
func BalanceSections(state *schedule.State, rm *model.ReadModel, cfg Config) BalanceResult {
	maxIter := cfg.BalanceMaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	minSections := cfg.BalanceMinSections
	if minSections <= 0 {
		minSections = 2
	}

	var result BalanceResult
	for _, course := range rm.AllCourses() {
		sections := rm.SectionsOf(course.ID)
		if len(sections) < minSections {
			continue
		}
		result.Moves += balanceCourse(state, course.ID, sections, maxIter, &result.Iterations)
	}
	result.Converged = result.Iterations < maxIter*len(rm.AllCourses())
	return result
}

func balanceCourse(state *schedule.State, courseID string, sections []model.CourseSection, maxIter int, iterations *int) int {
	slotBySection := slotIDsBySection(state, courseID)
	moves := 0

	for i := 0; i < maxIter; i++ {
		*iterations++
		over, under, spread := mostImbalancedPair(state, sections, slotBySection)
		if over == "" || under == "" || spread <= 1 {
			break
		}
		if !moveOneStudent(state, slotBySection[over], slotBySection[under]) {
			break
		}
		moves++
		sections = refreshEnrolment(state, sections, slotBySection)
	}
	return moves
}

func slotIDsBySection(state *schedule.State, courseID string) map[string]string {
	out := make(map[string]string)
	for _, s := range state.Snapshot() {
		if s.CourseID == courseID && s.SectionID != "" {
			out[s.SectionID] = s.ID
		}
	}
	return out
}

func refreshEnrolment(state *schedule.State, sections []model.CourseSection, slotBySection map[string]string) []model.CourseSection {
	out := make([]model.CourseSection, len(sections))
	for i, sec := range sections {
		out[i] = sec
		if slotID, ok := slotBySection[sec.ID]; ok {
			if slot, ok := state.Slot(slotID); ok {
				out[i].CurrentEnrolment = slot.Enrolled()
			}
		}
	}
	return out
}

func mostImbalancedPair(state *schedule.State, sections []model.CourseSection, slotBySection map[string]string) (over, under string, spread int) {
	type counted struct {
		id    string
		count int
		max   int
	}
	counts := make([]counted, 0, len(sections))
	for _, sec := range sections {
		slotID, ok := slotBySection[sec.ID]
		if !ok {
			continue
		}
		slot, ok := state.Slot(slotID)
		if !ok {
			continue
		}
		counts = append(counts, counted{id: sec.ID, count: slot.Enrolled(), max: sec.MaxEnrolment})
	}
	if len(counts) < 2 {
		return "", "", 0
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	most := counts[0]
	least := counts[len(counts)-1]
	if least.max > 0 && least.count >= least.max {
		return "", "", 0
	}
	return most.id, least.id, most.count - least.count
}

func moveOneStudent(state *schedule.State, fromSlotID, toSlotID string) bool {
	fromSlot, ok := state.Slot(fromSlotID)
	if !ok || len(fromSlot.Roster) == 0 {
		return false
	}
	studentID := fromSlot.Roster[len(fromSlot.Roster)-1]
	if _, err := state.UnenrollPrimitive(fromSlotID, studentID); err != nil {
		return false
	}
	if _, err := state.EnrollPrimitive(toSlotID, studentID); err != nil {
		state.EnrollPrimitive(fromSlotID, studentID)
		return false
	}
	return true
}
