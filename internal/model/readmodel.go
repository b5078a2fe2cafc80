package model

import "strings"

// ReadModel is the immutable snapshot loaded once per optimisation session
// (C2). It exposes indexed access by id plus the denormalised indices
// named in spec §4.2; all lookups are O(1) map access or O(log n) over a
// pre-sorted slice, never lazy I/O.
type ReadModel struct {
	students map[string]Student
	teachers map[string]Teacher
	courses  map[string]Course
	rooms    map[string]Room
	sections map[string]CourseSection

	history  map[string][]HistoryEntry
	prereqs  map[string][]PrerequisiteGroup

	teachersByDepartment           map[string][]string
	teachersByCertificationSubject map[string][]string
	coursesBySubject               map[Subject][]string
	coursesByLevel                 map[CourseLevel][]string
	sectionsByCourse               map[string][]string
	roomsByType                    map[RoomType][]string
	roomsByZone                    map[string][]string
	historyByStudent               map[string][]HistoryEntry
}

// Snapshot is the raw material a ReadModel is built from: one read of a
// DataSource, already materialised, so construction never performs I/O.
type Snapshot struct {
	Students []Student
	Teachers []Teacher
	Courses  []Course
	Rooms    []Room
	Sections map[string][]CourseSection // keyed by course id
	History  map[string][]HistoryEntry  // keyed by student id
	Prereqs  map[string][]PrerequisiteGroup // keyed by course id
}

// NewReadModel builds the indexed snapshot from a Snapshot. Prerequisite
// groups and section lists supplied per course augment Course/Section
// entities rather than replace them.
func NewReadModel(snap Snapshot) *ReadModel {
	rm := &ReadModel{
		students: make(map[string]Student, len(snap.Students)),
		teachers: make(map[string]Teacher, len(snap.Teachers)),
		courses:  make(map[string]Course, len(snap.Courses)),
		rooms:    make(map[string]Room, len(snap.Rooms)),
		sections: make(map[string]CourseSection),

		history: snap.History,
		prereqs: snap.Prereqs,

		teachersByDepartment:           make(map[string][]string),
		teachersByCertificationSubject: make(map[string][]string),
		coursesBySubject:               make(map[Subject][]string),
		coursesByLevel:                 make(map[CourseLevel][]string),
		sectionsByCourse:               make(map[string][]string),
		roomsByType:                    make(map[RoomType][]string),
		roomsByZone:                    make(map[string][]string),
		historyByStudent:               snap.History,
	}
	if rm.history == nil {
		rm.history = make(map[string][]HistoryEntry)
		rm.historyByStudent = rm.history
	}
	if rm.prereqs == nil {
		rm.prereqs = make(map[string][]PrerequisiteGroup)
	}

	for _, s := range snap.Students {
		rm.students[s.ID] = s
	}
	for _, t := range snap.Teachers {
		rm.teachers[t.ID] = t
		rm.teachersByDepartment[t.Department] = append(rm.teachersByDepartment[t.Department], t.ID)
		for _, cert := range t.Certifications {
			key := normalizeKey(cert.Subject)
			rm.teachersByCertificationSubject[key] = append(rm.teachersByCertificationSubject[key], t.ID)
		}
	}
	for _, c := range snap.Courses {
		rm.courses[c.ID] = c
		rm.coursesBySubject[c.Subject] = append(rm.coursesBySubject[c.Subject], c.ID)
		rm.coursesByLevel[c.Level] = append(rm.coursesByLevel[c.Level], c.ID)
	}
	for _, r := range snap.Rooms {
		rm.rooms[r.ID] = r
		rm.roomsByType[r.Type] = append(rm.roomsByType[r.Type], r.ID)
		if r.Zone != "" {
			rm.roomsByZone[r.Zone] = append(rm.roomsByZone[r.Zone], r.ID)
		}
	}
	for courseID, sections := range snap.Sections {
		for _, sec := range sections {
			rm.sections[sec.ID] = sec
			rm.sectionsByCourse[courseID] = append(rm.sectionsByCourse[courseID], sec.ID)
		}
	}
	return rm
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Student looks up a student by id.
func (rm *ReadModel) Student(id string) (Student, bool) {
	s, ok := rm.students[id]
	return s, ok
}

// Teacher looks up a teacher by id.
func (rm *ReadModel) Teacher(id string) (Teacher, bool) {
	t, ok := rm.teachers[id]
	return t, ok
}

// Course looks up a course by id.
func (rm *ReadModel) Course(id string) (Course, bool) {
	c, ok := rm.courses[id]
	return c, ok
}

// Room looks up a room by id.
func (rm *ReadModel) Room(id string) (Room, bool) {
	r, ok := rm.rooms[id]
	return r, ok
}

// Section looks up a course section by id.
func (rm *ReadModel) Section(id string) (CourseSection, bool) {
	sec, ok := rm.sections[id]
	return sec, ok
}

// AllStudents returns every student in the snapshot.
func (rm *ReadModel) AllStudents() []Student {
	out := make([]Student, 0, len(rm.students))
	for _, s := range rm.students {
		out = append(out, s)
	}
	return out
}

// AllTeachers returns every teacher in the snapshot.
func (rm *ReadModel) AllTeachers() []Teacher {
	out := make([]Teacher, 0, len(rm.teachers))
	for _, t := range rm.teachers {
		out = append(out, t)
	}
	return out
}

// AllCourses returns every course in the snapshot.
func (rm *ReadModel) AllCourses() []Course {
	out := make([]Course, 0, len(rm.courses))
	for _, c := range rm.courses {
		out = append(out, c)
	}
	return out
}

// TeachersByDepartment returns the teacher ids in a department.
func (rm *ReadModel) TeachersByDepartment(department string) []string {
	return rm.teachersByDepartment[department]
}

// TeachersByCertificationSubject returns teacher ids certified in subject.
func (rm *ReadModel) TeachersByCertificationSubject(subject string) []string {
	return rm.teachersByCertificationSubject[normalizeKey(subject)]
}

// CoursesBySubject returns course ids for a subject.
func (rm *ReadModel) CoursesBySubject(subject Subject) []string {
	return rm.coursesBySubject[subject]
}

// CoursesByLevel returns course ids for a level.
func (rm *ReadModel) CoursesByLevel(level CourseLevel) []string {
	return rm.coursesByLevel[level]
}

// SectionsByCourse returns section ids belonging to a course.
func (rm *ReadModel) SectionsByCourse(courseID string) []string {
	return rm.sectionsByCourse[courseID]
}

// SectionsOf resolves full CourseSection records for a course.
func (rm *ReadModel) SectionsOf(courseID string) []CourseSection {
	ids := rm.sectionsByCourse[courseID]
	out := make([]CourseSection, 0, len(ids))
	for _, id := range ids {
		if sec, ok := rm.sections[id]; ok {
			out = append(out, sec)
		}
	}
	return out
}

// RoomsByType returns room ids of a given type.
func (rm *ReadModel) RoomsByType(t RoomType) []string {
	return rm.roomsByType[t]
}

// RoomsByZone returns room ids in a zone.
func (rm *ReadModel) RoomsByZone(zone string) []string {
	return rm.roomsByZone[zone]
}

// HistoryByStudent returns a student's completed-course history.
func (rm *ReadModel) HistoryByStudent(studentID string) []HistoryEntry {
	return rm.historyByStudent[studentID]
}

// PrereqsOf returns the prerequisite groups for a course.
func (rm *ReadModel) PrereqsOf(courseID string) []PrerequisiteGroup {
	if groups, ok := rm.prereqs[courseID]; ok {
		return groups
	}
	if c, ok := rm.courses[courseID]; ok {
		return c.Prerequisites
	}
	return nil
}
