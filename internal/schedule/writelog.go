// Package schedule is the Schedule State (C3): the authoritative mutable
// assignment graph plus its append-only write log.
package schedule

import (
	"github.com/google/uuid"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// EventKind is the closed set of write-log entry kinds (spec §6 WriteLog).
type EventKind string

const (
	EventSlotAdded           EventKind = "SlotAdded"
	EventSlotRemoved         EventKind = "SlotRemoved"
	EventSlotMutated         EventKind = "SlotMutated"
	EventEnrollmentCreated   EventKind = "EnrollmentCreated"
	EventEnrollmentCancelled EventKind = "EnrollmentCancelled"
	EventWaitlistUpdated     EventKind = "WaitlistUpdated"
	EventConflictOpened      EventKind = "ConflictOpened"
	EventConflictResolved    EventKind = "ConflictResolved"
	EventConflictIgnored     EventKind = "ConflictIgnored"
)

// Event is one entry in the write log: a typed mutation with its before
// and after state, where applicable.
type Event struct {
	ID        string
	Kind      EventKind
	SlotID    string
	Before    *model.Slot
	After     *model.Slot
	StudentID string
	CourseID  string
	SectionID string
	ConflictID string
	Note      string
}

// WriteLog is the append-only record of every mutation a State has made.
// Persistence is the host's responsibility (spec §3 lifecycle); the core
// only ever appends.
type WriteLog struct {
	entries []Event
}

func (w *WriteLog) append(e Event) Event {
	e.ID = uuid.New().String()
	w.entries = append(w.entries, e)
	return e
}

// Entries returns a defensive copy of the recorded events, in append order.
func (w *WriteLog) Entries() []Event {
	out := make([]Event, len(w.entries))
	copy(out, w.entries)
	return out
}

// Len returns the number of recorded events.
func (w *WriteLog) Len() int {
	return len(w.entries)
}
