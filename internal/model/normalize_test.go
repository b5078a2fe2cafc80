package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCourseNameRomanNumerals(t *testing.T) {
	assert.Equal(t, "algebra 2", NormalizeCourseName("Algebra II"))
	assert.Equal(t, "english 4", NormalizeCourseName("English IV"))
}

func TestNormalizeCourseNameIdempotent(t *testing.T) {
	once := NormalizeCourseName("Spanish III Honors")
	twice := NormalizeCourseName(once)
	assert.Equal(t, once, twice)
}

func TestCourseNamesMatchSubstringTolerance(t *testing.T) {
	assert.True(t, CourseNamesMatch("AP English IV", "English 4"))
	assert.False(t, CourseNamesMatch("Algebra 1", "Geometry"))
}

func TestTimekeeperFuncAdapts(t *testing.T) {
	var tk Timekeeper = TimekeeperFunc(func() Timestamp { return Timestamp{Unix: 42} })
	assert.Equal(t, Timestamp{Unix: 42}, tk.Now())
}
