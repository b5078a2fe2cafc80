package model

import "github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/calendar"

// Slot is one scheduled meeting of a course section, on one day, in one
// room, with one teacher (spec §3 ScheduleSlot / GLOSSARY).
type Slot struct {
	ID             string
	ScheduleID     string
	CourseID       string
	SectionID      string
	TeacherID      string // "" means absent
	RoomID         string // "" means absent
	Day            calendar.Day
	Start          calendar.Clock
	End            calendar.Clock
	PeriodNumber   int // 0 means unassigned
	Roster         []string
	IsLunch        bool
	LunchWave      int
}

// HasTeacher reports whether the slot has an assigned teacher.
func (s Slot) HasTeacher() bool { return s.TeacherID != "" }

// HasRoom reports whether the slot has an assigned room.
func (s Slot) HasRoom() bool { return s.RoomID != "" }

// Enrolled returns the slot's roster size.
func (s Slot) Enrolled() int { return len(s.Roster) }

// HasStudent reports whether studentID is on the slot's roster.
func (s Slot) HasStudent(studentID string) bool {
	for _, id := range s.Roster {
		if id == studentID {
			return true
		}
	}
	return false
}

// Valid reports whether the slot carries the fields the detector requires
// to run its checks (spec §4.4 failure semantics: a slot missing day,
// start or end is skipped with a warning rather than raising).
func (s Slot) Valid() bool {
	return s.Day.Valid() && s.Start < s.End
}
