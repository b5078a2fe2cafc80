package model

import "github.com/jmoiron/sqlx/types"

// Certification is one teaching qualification: a subject area, an optional
// grade-level range, and an optional expiration.
type Certification struct {
	Subject    string
	GradeLow   string // "" means unbounded
	GradeHigh  string // "" means unbounded
	Expired    bool
}

// Student is a learner under the scheduling core's management.
type Student struct {
	ID                  string
	Active              bool
	Grade               string // one of "8".."12"
	MedicalNotes        string
	HasIEP              bool
	AccommodationReview *Timestamp
	History             []HistoryEntry

	// Meta carries SIS-sourced fields the core has no typed opinion about
	// (e.g. counselor notes); it is read-only passthrough, never inspected
	// by detector/selector logic.
	Meta types.JSONText `json:"meta,omitempty"`
}

// HistoryEntry is one completed-course record in a student's transcript.
type HistoryEntry struct {
	CourseID   string
	FinalGrade float64
	Term       string
}

// Teacher is an instructor eligible for assignment to slots.
type Teacher struct {
	ID             string
	Name           string
	Department     string
	Active         bool
	Certifications []Certification
}

// PrereqItem is one (course, minimum-grade) disjunct inside a
// PrerequisiteGroup.
type PrereqItem struct {
	CourseID      string
	MinimumGrade  float64
}

// PrerequisiteGroup is one disjunction in a course's AND-of-ORs formula
// (spec §3): satisfied iff any item in Items is satisfied.
type PrerequisiteGroup struct {
	Items []PrereqItem
}

// Course is an offering definition independent of any particular section.
type Course struct {
	ID                    string
	Name                  string
	Subject               Subject
	Level                 CourseLevel
	MaxStudents           int
	RequiredCertifications []string
	IsSingleton           bool
	NumSectionsNeeded     int
	RequiresLab           bool
	Prerequisites         []PrerequisiteGroup
	Credits               float64
}

// Room is a physical space a slot can be assigned to.
type Room struct {
	ID       string
	Number   string
	Building string
	Floor    int
	Zone     string
	Capacity int
	Type     RoomType
}

// CourseSection is one offering of a Course that students enrol into.
type CourseSection struct {
	ID               string
	CourseID         string
	AssignedPeriod   int // 0 means unassigned
	CurrentEnrolment int
	MaxEnrolment     int
	Status           SectionStatus
	IsSingleton      bool
}

// Timestamp wraps a unix-seconds value so the core never depends on
// wall-clock access directly; see Clock capability in capabilities.go.
type Timestamp struct {
	Unix int64
}

// Before reports whether t is strictly earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.Unix < other.Unix
}

// WaitlistEntry is one queued enrolment request (spec §3).
type WaitlistEntry struct {
	ID        string
	StudentID string
	CourseID  string
	Position  int
	Priority  float64
	Status    WaitlistStatus
	AddedAt   Timestamp
}
