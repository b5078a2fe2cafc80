package schedule

import (
	"fmt"
	"sync"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
	coreerrors "github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/pkg/errors"
)

// State is the authoritative mutable assignment graph (spec §4.3). It is
// single-writer: the caller invoking Add/Remove/Mutate/Enroll/Unenroll owns
// the write; concurrent readers (detector, evaluator) take a snapshot
// through a reader guard, following the same sync.RWMutex split the
// corpus's in-memory proposal cache uses.
type State struct {
	mu    sync.RWMutex
	slots map[string]model.Slot
	log   WriteLog
}

// NewState returns an empty schedule state.
func NewState() *State {
	return &State{slots: make(map[string]model.Slot)}
}

// NewStateFrom seeds a state with pre-existing slots (e.g. a prior term's
// committed schedule), without emitting write-log entries for the seed.
func NewStateFrom(slots []model.Slot) *State {
	s := NewState()
	for _, slot := range slots {
		s.slots[slot.ID] = slot
	}
	return s
}

// Snapshot returns a consistent, read-only copy of every slot. Callers
// (C4, C5) operate entirely on this copy so they never observe a
// partially-applied write.
func (s *State) Snapshot() []model.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Slot, 0, len(s.slots))
	for _, slot := range s.slots {
		out = append(out, slot)
	}
	return out
}

// Slot returns a single slot by id.
func (s *State) Slot(id string) (model.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slot, ok := s.slots[id]
	return slot, ok
}

// WriteLog returns a defensive copy of the accumulated write log.
func (s *State) WriteLog() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.log.Entries()
}

// AddSlot inserts a new slot and returns the produced write-log entry.
func (s *State) AddSlot(slot model.Slot) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.ID == "" {
		return Event{}, coreerrors.Clone(coreerrors.ErrInvalidInput, "schedule: slot id required")
	}
	if _, exists := s.slots[slot.ID]; exists {
		return Event{}, coreerrors.Clone(coreerrors.ErrConflict, fmt.Sprintf("schedule: slot %q already exists", slot.ID))
	}
	s.slots[slot.ID] = slot
	after := slot
	return s.log.append(Event{Kind: EventSlotAdded, SlotID: slot.ID, After: &after}), nil
}

// RemoveSlot deletes a slot by id and returns the produced write-log entry.
func (s *State) RemoveSlot(id string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, ok := s.slots[id]
	if !ok {
		return Event{}, coreerrors.Clone(coreerrors.ErrNotFound, fmt.Sprintf("schedule: slot %q not found", id))
	}
	delete(s.slots, id)
	return s.log.append(Event{Kind: EventSlotRemoved, SlotID: id, Before: &before}), nil
}

// MutateSlot applies f to the slot identified by id and records the
// before/after pair.
func (s *State) MutateSlot(id string, f func(model.Slot) model.Slot) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	before, ok := s.slots[id]
	if !ok {
		return Event{}, coreerrors.Clone(coreerrors.ErrNotFound, fmt.Sprintf("schedule: slot %q not found", id))
	}
	after := f(before)
	after.ID = before.ID
	s.slots[id] = after
	beforeCopy, afterCopy := before, after
	return s.log.append(Event{Kind: EventSlotMutated, SlotID: id, Before: &beforeCopy, After: &afterCopy}), nil
}

// EnrollPrimitive appends studentID to a slot's roster without any of the
// C9 gating checks (active student, section status, prerequisites,
// collision). It is deliberately low-level: internal/waitlist calls it after
// running its own gate, while the internal/placement balancer and the
// resolver's REASSIGN_STUDENT edit call it directly to move students who
// are already enrolled in the course. Keeping the gate out of C3 keeps C3
// from importing C9 and creating a cycle.
func (s *State) EnrollPrimitive(slotID, studentID string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return Event{}, coreerrors.Clone(coreerrors.ErrNotFound, fmt.Sprintf("schedule: slot %q not found", slotID))
	}
	if slot.HasStudent(studentID) {
		return Event{}, coreerrors.Clone(coreerrors.ErrConflict, fmt.Sprintf("schedule: student %q already enrolled in slot %q", studentID, slotID))
	}
	slot.Roster = append(append([]string{}, slot.Roster...), studentID)
	s.slots[slotID] = slot
	return s.log.append(Event{
		Kind:      EventEnrollmentCreated,
		SlotID:    slotID,
		StudentID: studentID,
	}), nil
}

// UnenrollPrimitive removes studentID from a slot's roster.
func (s *State) UnenrollPrimitive(slotID, studentID string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.slots[slotID]
	if !ok {
		return Event{}, coreerrors.Clone(coreerrors.ErrNotFound, fmt.Sprintf("schedule: slot %q not found", slotID))
	}
	roster := make([]string, 0, len(slot.Roster))
	removed := false
	for _, id := range slot.Roster {
		if id == studentID && !removed {
			removed = true
			continue
		}
		roster = append(roster, id)
	}
	if !removed {
		return Event{}, coreerrors.Clone(coreerrors.ErrNotFound, fmt.Sprintf("schedule: student %q not enrolled in slot %q", studentID, slotID))
	}
	slot.Roster = roster
	s.slots[slotID] = slot
	return s.log.append(Event{
		Kind:      EventEnrollmentCancelled,
		SlotID:    slotID,
		StudentID: studentID,
	}), nil
}

// RecordConflictEvent appends a conflict lifecycle entry to the write log.
// The conflict records themselves live in internal/conflict; State only
// tracks that the transition happened, per spec §3 lifecycle.
func (s *State) RecordConflictEvent(kind EventKind, conflictID, note string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.append(Event{Kind: kind, ConflictID: conflictID, Note: note})
}

// RecordWaitlistEvent appends a waitlist-mutation entry to the write log.
func (s *State) RecordWaitlistEvent(studentID, courseID, note string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.append(Event{
		Kind:      EventWaitlistUpdated,
		StudentID: studentID,
		CourseID:  courseID,
		Note:      note,
	})
}
