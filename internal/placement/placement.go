// Package placement is the Section/Singleton Placer (C8): period
// assignment for singleton courses and enrolment balancing across
// sections of the same course (spec §4.12).
package placement

import (
	"sort"

	"github.com/michaelkatsweb/Heronix-SchedulerV2-sub002/internal/model"
)

// Config is the capability record the placer needs.
type Config struct {
	PeriodsPerDay        int
	PeriodPreference      []int
	BalanceMaxIterations int
	BalanceMinSections   int
}

// Section is the minimal view of a CourseSection the placer operates on.
type Section struct {
	ID               string
	CourseID         string
	IsSingleton      bool
	Demand           int
	AssignedPeriod   int
	CurrentEnrolment int
	MaxEnrolment     int
}

// DeriveSingletons implements spec §4.12 step 1: a section is a singleton
// placement candidate when its course is flagged is_singleton or needs
// only one section (num_sections_needed==1), whichever the read-model
// records. Sections whose course can't be resolved are left untouched.
func DeriveSingletons(courses []model.Course, sections []Section) []Section {
	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	out := make([]Section, len(sections))
	copy(out, sections)
	for i, s := range out {
		c, ok := byID[s.CourseID]
		if !ok {
			continue
		}
		if c.IsSingleton || c.NumSectionsNeeded == 1 {
			out[i].IsSingleton = true
		}
	}
	return out
}

// SectionsFromReadModel builds the placer's section view from a read-model
// snapshot, using current enrolment as demand.
func SectionsFromReadModel(rm *model.ReadModel) []Section {
	var out []Section
	for _, c := range rm.AllCourses() {
		for _, sec := range rm.SectionsOf(c.ID) {
			out = append(out, Section{
				ID:               sec.ID,
				CourseID:         sec.CourseID,
				IsSingleton:      sec.IsSingleton,
				Demand:           sec.CurrentEnrolment,
				AssignedPeriod:   sec.AssignedPeriod,
				CurrentEnrolment: sec.CurrentEnrolment,
				MaxEnrolment:     sec.MaxEnrolment,
			})
		}
	}
	return out
}

// PlaceSingletons implements spec §4.12 steps 2-3: sort identified
// singletons by descending demand, and assign periods from the preference
// list so no two singletons share a period. Run DeriveSingletons first to
// populate IsSingleton (step 1).
func PlaceSingletons(sections []Section, cfg Config) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)

	singletons := make([]int, 0)
	for i, s := range out {
		if s.IsSingleton {
			singletons = append(singletons, i)
		}
	}
	sort.SliceStable(singletons, func(a, b int) bool {
		return out[singletons[a]].Demand > out[singletons[b]].Demand
	})

	used := make(map[int]bool)
	prefs := cfg.PeriodPreference
	if len(prefs) == 0 {
		prefs = defaultPreference(cfg.PeriodsPerDay)
	}
	for _, idx := range singletons {
		for _, period := range prefs {
			if used[period] {
				continue
			}
			out[idx].AssignedPeriod = period
			used[period] = true
			break
		}
	}
	return out
}

func defaultPreference(periodsPerDay int) []int {
	if periodsPerDay <= 0 {
		periodsPerDay = 8
	}
	out := make([]int, periodsPerDay)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
