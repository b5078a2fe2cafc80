package config

// DefaultConstraintWeights returns the per-conflict-type weight percentages
// consulted by the fitness evaluator (C5). Values are percentages per
// spec.md §4.5 (`weight_of(c.type) / 100`); 100 means "full weight".
func DefaultConstraintWeights() map[string]float64 {
	return map[string]float64{
		"TEACHER_OVERLAP":           100,
		"ROOM_OVERLAP":              100,
		"STUDENT_OVERLAP":           100,
		"ROOM_CAPACITY":             90,
		"SUBJECT_MISMATCH":          90,
		"EXCESSIVE_TEACHING_HOURS":  60,
		"NO_PREP_PERIOD":            50,
		"NO_LUNCH_BREAK":            60,
		"ROOM_TYPE_MISMATCH":        40,
		"TEACHER_TRAVEL":            30,
		"EQUIPMENT_UNAVAILABLE":     50,
		"SECTION_OVER_ENROLLED":     70,
		"SECTION_UNDER_ENROLLED":    20,
	}
}

// DefaultSuccessRates returns the type-default confidence (percent, 0-100)
// used before blending in the rolling success history (§4.6).
func DefaultSuccessRates() map[string]float64 {
	return map[string]float64{
		"CHANGE_ROOM":      90,
		"CHANGE_TEACHER":   85,
		"CHANGE_TIME":      70,
		"SWAP_SLOTS":       75,
		"SPLIT_SECTION":    60,
		"REASSIGN_STUDENT": 80,
		"ADD_CO_TEACHER":   65,
		"IGNORE":           50,
	}
}

// DefaultCoreElectiveCounts mirrors the per-grade core/elective table of
// spec.md §4.9.
func DefaultCoreElectiveCounts() map[string][2]int {
	return map[string][2]int{
		"8":  {4, 2},
		"9":  {4, 3},
		"10": {4, 3},
		"11": {4, 3},
		"12": {3, 3},
	}
}

// DefaultGradeCoursePatterns mirrors the grade-pattern preference table of
// spec.md §4.9 step 3b, covering the five core subjects.
func DefaultGradeCoursePatterns() map[string]map[string][]string {
	return map[string]map[string][]string{
		"8": {
			"English":        {"English 8"},
			"Mathematics":    {"Pre-Algebra", "Math 8"},
			"Science":        {"Physical Science"},
			"Social Studies": {"World Cultures"},
			"History":        {"World History 1"},
		},
		"9": {
			"English":        {"English I", "English 1"},
			"Mathematics":    {"Algebra I", "Algebra 1", "Geometry"},
			"Science":        {"Biology"},
			"Social Studies": {"World Geography"},
			"History":        {"World History 2"},
		},
		"10": {
			"English":        {"English II", "English 2"},
			"Mathematics":    {"Geometry", "Algebra 2"},
			"Science":        {"Chemistry"},
			"Social Studies": {"American History"},
			"History":        {"American History"},
		},
		"11": {
			"English":        {"English III", "English 3"},
			"Mathematics":    {"Algebra 2", "Pre-Calculus"},
			"Science":        {"Physics"},
			"Social Studies": {"U.S. History"},
			"History":        {"U.S. History"},
		},
		"12": {
			"English":        {"English IV", "English 4"},
			"Mathematics":    {"Pre-Calculus", "Calculus"},
			"Science":        {"Anatomy", "Physics"},
			"Social Studies": {"Government", "Economics"},
			"History":        {"Government"},
		},
	}
}

// DefaultGradeElectiveCategoryPatterns mirrors the per-grade recommended
// elective category table of spec.md §4.9 step 4b: substring-matched
// course-name candidates per category, tried before the plain fallback
// scan of step 4c.
func DefaultGradeElectiveCategoryPatterns() map[string]map[string][]string {
	return map[string]map[string][]string{
		"9": {
			"Visual & Performing Arts": {"Drawing", "Band", "Choir"},
			"Technology":               {"Intro to Computer Science"},
		},
		"10": {
			"Visual & Performing Arts": {"Drawing 2", "Band", "Choir"},
			"Technology":               {"Computer Science"},
			"World Language":           {"Spanish 2", "French 2"},
		},
		"11": {
			"Visual & Performing Arts": {"Studio Art", "Band", "Choir"},
			"Technology":               {"Computer Science"},
			"World Language":           {"Spanish 3", "French 3"},
		},
		"12": {
			"Visual & Performing Arts": {"Studio Art", "Band", "Choir"},
			"Technology":               {"AP Computer Science"},
		},
	}
}

// DefaultCourseSequences maps a completed course name to the ordered list
// of courses that continue it (spec.md §4.9 step 3a / 4a).
func DefaultCourseSequences() map[string][]string {
	return map[string][]string{
		"Algebra I":        {"Geometry", "Algebra 2"},
		"Algebra 1":        {"Geometry", "Algebra 2"},
		"Geometry":         {"Algebra 2"},
		"Algebra 2":        {"Pre-Calculus"},
		"Pre-Calculus":     {"Calculus"},
		"English I":        {"English II"},
		"English 1":        {"English 2"},
		"English II":       {"English III"},
		"English 2":        {"English 3"},
		"English III":      {"English IV"},
		"English 3":        {"English 4"},
		"Biology":          {"Chemistry"},
		"Chemistry":        {"Physics"},
		"Spanish I":        {"Spanish II"},
		"Spanish 1":        {"Spanish 2"},
		"Spanish II":       {"Spanish III"},
		"French I":         {"French II"},
	}
}

// DefaultPeriodPreference mirrors the singleton placement preference order
// of spec.md §4.12 step 3.
func DefaultPeriodPreference() []int {
	return []int{3, 4, 5, 2, 6, 1, 7, 8}
}
