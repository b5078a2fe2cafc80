package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureSnapshot() Snapshot {
	return Snapshot{
		Teachers: []Teacher{
			{ID: "t1", Name: "A. Rivera", Department: "Science", Active: true,
				Certifications: []Certification{{Subject: "Biology"}}},
			{ID: "t2", Name: "B. Chen", Department: "Math", Active: true},
		},
		Courses: []Course{
			{ID: "c1", Name: "Biology", Subject: SubjectScience, Level: LevelHighSchool},
			{ID: "c2", Name: "Algebra 1", Subject: SubjectMathematics, Level: LevelHighSchool},
		},
		Rooms: []Room{
			{ID: "r1", Zone: "A", Type: RoomScienceLab, Capacity: 28},
		},
		Sections: map[string][]CourseSection{
			"c1": {{ID: "sec1", CourseID: "c1", MaxEnrolment: 28, Status: SectionOpen}},
		},
	}
}

func TestReadModelIndicesByDepartmentAndCertification(t *testing.T) {
	rm := NewReadModel(fixtureSnapshot())

	assert.ElementsMatch(t, []string{"t1"}, rm.TeachersByDepartment("Science"))
	assert.ElementsMatch(t, []string{"t1"}, rm.TeachersByCertificationSubject("biology"))
	assert.ElementsMatch(t, []string{"t1"}, rm.TeachersByCertificationSubject("BIOLOGY"), "certification lookup is case-insensitive")
}

func TestReadModelSectionsAndRoomIndices(t *testing.T) {
	rm := NewReadModel(fixtureSnapshot())

	sections := rm.SectionsOf("c1")
	require.Len(t, sections, 1)
	assert.Equal(t, "sec1", sections[0].ID)

	assert.ElementsMatch(t, []string{"r1"}, rm.RoomsByType(RoomScienceLab))
	assert.ElementsMatch(t, []string{"r1"}, rm.RoomsByZone("A"))
}

func TestReadModelPrereqsOfFallsBackToCourseField(t *testing.T) {
	snap := fixtureSnapshot()
	courseWithPrereqs := snap.Courses[1]
	courseWithPrereqs.Prerequisites = []PrerequisiteGroup{{Items: []PrereqItem{{CourseID: "c0", MinimumGrade: 70}}}}
	snap.Courses[1] = courseWithPrereqs

	rm := NewReadModel(snap)
	groups := rm.PrereqsOf("c2")
	require.Len(t, groups, 1)
	assert.Equal(t, "c0", groups[0].Items[0].CourseID)
}

func TestReadModelLookupMiss(t *testing.T) {
	rm := NewReadModel(fixtureSnapshot())
	_, ok := rm.Student("ghost")
	assert.False(t, ok)
}
