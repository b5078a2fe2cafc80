// Package selector is the Student Course Selector (C7): per-student course
// assignment under compliance, progression, medical, and capacity rules
// (spec §4.9).
package selector

import (
	"sort"
	"strings"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/conflict"
	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// Config is the capability record the selector needs (grade tables,
// keyword sets, credit targets), passed explicitly per spec §9.
type Config struct {
	CoreElectiveCountsByGrade     map[string][2]int
	GradeCoursePatterns           map[string]map[string][]string
	GradeElectiveCategoryPatterns map[string]map[string][]string
	CourseSequences               map[string][]string
	PEKeywords                    []string
	MedicalPERestrictions         []string
	RequiredCredits               float64
}

// coreSubjectOrder is the fixed iteration order for core-subject selection
// (spec §4.9 step 3).
var coreSubjectOrder = []string{"English", "Mathematics", "Science", "Social Studies", "History"}

// expectedCreditsByGrade mirrors spec §4.9 step 5's graduation-credit
// projection checkpoints.
var expectedCreditsByGrade = map[string]float64{
	"9":  6,
	"10": 12,
	"11": 18,
	"12": 24,
}

// StudentScheduleResult is the selector's output (spec §4.9 step 6).
type StudentScheduleResult struct {
	StudentID       string
	SelectedCourses []string
	Warnings        []string
	Success         bool
}

// Select runs the §4.9 algorithm for one student.
func Select(student model.Student, rm *model.ReadModel, cfg Config) StudentScheduleResult {
	result := StudentScheduleResult{StudentID: student.ID}

	skipPE := medicalScan(student.MedicalNotes, cfg.MedicalPERestrictions)
	if skipPE {
		result.Warnings = append(result.Warnings, "medical alert: student restricted from physical education courses")
	}

	counts, ok := cfg.CoreElectiveCountsByGrade[student.Grade]
	if !ok {
		counts = [2]int{4, 3}
	}
	coreCount, electiveCount := counts[0], counts[1]

	completed := completedCourseIDs(student.History)
	selected := make(map[string]bool)
	var chosen []string

	for _, subject := range coreSubjectOrder {
		courseID, note, ok := pickCoreCourse(subject, student.Grade, completed, selected, rm, cfg)
		if ok {
			chosen = append(chosen, courseID)
			selected[courseID] = true
			result.Warnings = append(result.Warnings, note)
		}
	}

	electivesPicked := pickElectives(student.Grade, electiveCount, completed, selected, skipPE, rm, cfg)
	for _, e := range electivesPicked {
		chosen = append(chosen, e)
		selected[e] = true
	}

	for _, courseID := range chosen {
		result.Warnings = append(result.Warnings, validatePrereqs(student, courseID, rm)...)
	}
	result.Warnings = append(result.Warnings, creditProjectionWarning(student.Grade, len(chosen), rm, chosen, cfg)...)

	result.SelectedCourses = chosen
	target := coreCount + electiveCount
	result.Success = len(chosen) >= target-1
	return result
}

func medicalScan(notes string, keywords []string) bool {
	lower := strings.ToLower(notes)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func completedCourseIDs(history []model.HistoryEntry) map[string]model.HistoryEntry {
	out := make(map[string]model.HistoryEntry, len(history))
	for _, h := range history {
		out[h.CourseID] = h
	}
	return out
}

// pickCoreCourse implements §4.9 step 3: sequential continuation, then
// grade-pattern preference, then subject fallback.
func pickCoreCourse(subject, grade string, completed map[string]model.HistoryEntry, selected map[string]bool, rm *model.ReadModel, cfg Config) (string, string, bool) {
	if courseID, ok := sequentialContinuation(completed, selected, rm, cfg); ok {
		if course, found := rm.Course(courseID); found && matchesSubjectName(course, subject) {
			return courseID, "sequential continuation picked " + course.Name, true
		}
	}
	if courseID, ok := gradePatternPick(subject, grade, selected, rm, cfg); ok {
		course, _ := rm.Course(courseID)
		return courseID, "grade-pattern preference picked " + course.Name, true
	}
	if courseID, ok := subjectFallback(subject, selected, rm, nil); ok {
		course, _ := rm.Course(courseID)
		return courseID, "subject fallback picked " + course.Name + " ✓ State/federal standard", true
	}
	return "", "no available course found for subject " + subject, false
}

func matchesSubjectName(course model.Course, subjectName string) bool {
	return strings.EqualFold(string(course.Subject), strings.ReplaceAll(strings.ToUpper(subjectName), " ", "_"))
}

func sequentialContinuation(completed map[string]model.HistoryEntry, selected map[string]bool, rm *model.ReadModel, cfg Config) (string, bool) {
	for completedCourseID := range completed {
		completedCourse, ok := rm.Course(completedCourseID)
		if !ok {
			continue
		}
		sequence, ok := cfg.CourseSequences[completedCourse.Name]
		if !ok {
			continue
		}
		for _, nextName := range sequence {
			if courseID, ok := findCourseByName(rm, nextName, selected); ok && hasCapacityAndTeacher(courseID, rm) {
				return courseID, true
			}
		}
	}
	return "", false
}

func gradePatternPick(subject, grade string, selected map[string]bool, rm *model.ReadModel, cfg Config) (string, bool) {
	patterns, ok := cfg.GradeCoursePatterns[grade]
	if !ok {
		return "", false
	}
	names, ok := patterns[subject]
	if !ok {
		return "", false
	}
	for _, name := range names {
		if courseID, ok := findCourseByName(rm, name, selected); ok && hasCapacityAndTeacher(courseID, rm) {
			return courseID, true
		}
	}
	return "", false
}

func subjectFallback(subject string, selected map[string]bool, rm *model.ReadModel, keywordFilter func(model.Course) bool) (string, bool) {
	for _, course := range rm.AllCourses() {
		if selected[course.ID] {
			continue
		}
		if !matchesSubjectName(course, subject) && !strings.Contains(strings.ToLower(string(course.Subject)), strings.ToLower(strings.ReplaceAll(subject, " ", "_"))) {
			continue
		}
		if keywordFilter != nil && !keywordFilter(course) {
			continue
		}
		if hasCapacityAndTeacher(course.ID, rm) {
			return course.ID, true
		}
	}
	return "", false
}

func findCourseByName(rm *model.ReadModel, name string, selected map[string]bool) (string, bool) {
	for _, course := range rm.AllCourses() {
		if selected[course.ID] {
			continue
		}
		if model.CourseNamesMatch(course.Name, name) {
			return course.ID, true
		}
	}
	return "", false
}

func hasCapacityAndTeacher(courseID string, rm *model.ReadModel) bool {
	course, ok := rm.Course(courseID)
	if !ok {
		return false
	}
	hasRoom := false
	for _, sec := range rm.SectionsOf(courseID) {
		if sec.CurrentEnrolment < sec.MaxEnrolment {
			hasRoom = true
			break
		}
	}
	if !hasRoom {
		return false
	}
	for _, t := range rm.AllTeachers() {
		if !t.Active {
			continue
		}
		held := make([]string, 0, len(t.Certifications))
		for _, c := range t.Certifications {
			if !c.Expired {
				held = append(held, c.Subject)
			}
		}
		if conflict.AnyCertificationMatches(course.RequiredCertifications, held) {
			return true
		}
		if len(course.RequiredCertifications) == 0 {
			return true
		}
	}
	return false
}

func pickElectives(grade string, count int, completed map[string]model.HistoryEntry, selected map[string]bool, skipPE bool, rm *model.ReadModel, cfg Config) []string {
	var out []string
	isPE := func(course model.Course) bool {
		if !skipPE {
			return false
		}
		lower := strings.ToLower(course.Name)
		for _, kw := range cfg.PEKeywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return true
			}
		}
		return false
	}

	// 4a: continue electives from prior year.
	for completedCourseID := range completed {
		if len(out) >= count {
			break
		}
		completedCourse, ok := rm.Course(completedCourseID)
		if !ok {
			continue
		}
		sequence, ok := cfg.CourseSequences[completedCourse.Name]
		if !ok {
			continue
		}
		for _, nextName := range sequence {
			courseID, ok := findCourseByName(rm, nextName, selected)
			if !ok {
				continue
			}
			course, _ := rm.Course(courseID)
			if isPE(course) || !hasCapacityAndTeacher(courseID, rm) {
				continue
			}
			out = append(out, courseID)
			selected[courseID] = true
			break
		}
	}

	// 4b: per-grade recommended elective categories, substring-matched the
	// same way gradePatternPick does for core subjects.
	for len(out) < count {
		courseID, ok := recommendedElectiveCategory(grade, selected, isPE, rm, cfg)
		if !ok {
			break
		}
		out = append(out, courseID)
		selected[courseID] = true
	}

	// 4c fallback fills the rest: any elective with capacity and a
	// qualified teacher, excluding PE when skipPE.
	for _, course := range rm.AllCourses() {
		if len(out) >= count {
			break
		}
		if selected[course.ID] || isPE(course) {
			continue
		}
		if isCoreSubject(course.Subject) {
			continue
		}
		if !hasCapacityAndTeacher(course.ID, rm) {
			continue
		}
		out = append(out, course.ID)
		selected[course.ID] = true
	}
	return out
}

// recommendedElectiveCategory implements spec §4.9 step 4b: pick a course
// from the student's grade-level recommended elective categories, matching
// candidate names the same way gradePatternPick matches core subjects.
// Categories are tried in a fixed (sorted) order so results are
// deterministic regardless of map iteration order.
func recommendedElectiveCategory(grade string, selected map[string]bool, isPE func(model.Course) bool, rm *model.ReadModel, cfg Config) (string, bool) {
	categories, ok := cfg.GradeElectiveCategoryPatterns[grade]
	if !ok {
		return "", false
	}
	for _, category := range sortedKeys(categories) {
		for _, name := range categories[category] {
			courseID, ok := findCourseByName(rm, name, selected)
			if !ok {
				continue
			}
			course, _ := rm.Course(courseID)
			if isPE(course) || !hasCapacityAndTeacher(courseID, rm) {
				continue
			}
			return courseID, true
		}
	}
	return "", false
}

func sortedKeys(m map[string][]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func isCoreSubject(subject model.Subject) bool {
	switch subject {
	case model.SubjectEnglish, model.SubjectMathematics, model.SubjectScience, model.SubjectSocialStudies, model.SubjectHistory:
		return true
	default:
		return false
	}
}

// validatePrereqs warns (never fails) when a selected course's prerequisite
// groups are not fully satisfied (spec §4.9 step 5, §4.11).
func validatePrereqs(student model.Student, courseID string, rm *model.ReadModel) []string {
	var warnings []string
	groups := rm.PrereqsOf(courseID)
	for _, group := range groups {
		if groupSatisfied(student, group) {
			continue
		}
		course, _ := rm.Course(courseID)
		warnings = append(warnings, "prerequisite deficit for "+course.Name)
	}
	return warnings
}

func groupSatisfied(student model.Student, group model.PrerequisiteGroup) bool {
	for _, item := range group.Items {
		for _, h := range student.History {
			if h.CourseID == item.CourseID && h.FinalGrade >= item.MinimumGrade {
				return true
			}
		}
	}
	return false
}

func creditProjectionWarning(grade string, coursesSelected int, rm *model.ReadModel, chosen []string, cfg Config) []string {
	expected, ok := expectedCreditsByGrade[grade]
	if !ok {
		return nil
	}
	var projected float64
	for _, id := range chosen {
		if c, ok := rm.Course(id); ok {
			projected += c.Credits
		}
	}
	required := cfg.RequiredCredits
	if required == 0 {
		required = 24
	}
	deficitThreshold := 2.0
	if grade == "12" {
		if projected < required {
			return []string{"graduation credit shortfall: projected below required total"}
		}
		return nil
	}
	if expected-projected >= deficitThreshold {
		return []string{"graduation credit status: projected pace below expected checkpoint"}
	}
	return nil
}
