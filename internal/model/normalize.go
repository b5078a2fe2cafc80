package model

import "strings"

// romanSubstitutions is applied in order, each replacing every occurrence of
// a space-prefixed Roman numeral with its Arabic equivalent, anywhere in the
// name rather than only at its end (spec §4.10). Longer numerals are
// substituted first so "iv" never gets caught by a partial match on "i".
var romanSubstitutions = []struct {
	roman  string
	arabic string
}{
	{" iv", " 4"},
	{" iii", " 3"},
	{" ii", " 2"},
	{" i", " 1"},
}

// pairedCanonicalizations maps known course-family name variants to one
// canonical spelling, applied after Roman-numeral substitution.
var pairedCanonicalizations = map[string]string{
	"algebra i":   "algebra 1",
	"algebra ii":  "algebra 2",
	"english i":   "english 1",
	"english ii":  "english 2",
	"english iii": "english 3",
	"english iv":  "english 4",
	"spanish i":   "spanish 1",
	"spanish ii":  "spanish 2",
	"spanish iii": "spanish 3",
	"french i":    "french 1",
	"french ii":   "french 2",
}

// NormalizeCourseName computes the case-insensitive fixed point of the
// Roman-numeral and paired-canonicalization substitutions (spec §4.10).
// It is idempotent: NormalizeCourseName(NormalizeCourseName(n)) == NormalizeCourseName(n).
func NormalizeCourseName(name string) string {
	cur := strings.ToLower(strings.TrimSpace(name))
	for {
		next := cur
		for _, sub := range romanSubstitutions {
			next = strings.ReplaceAll(next, sub.roman, sub.arabic)
		}
		for from, to := range pairedCanonicalizations {
			next = strings.ReplaceAll(next, from, to)
		}
		if next == cur {
			return next
		}
		cur = next
	}
}

// CourseNamesMatch reports whether two course names refer to the same
// course under tolerant matching: normalised forms equal, or either is a
// substring of the other (spec §4.10).
func CourseNamesMatch(a, b string) bool {
	na, nb := NormalizeCourseName(a), NormalizeCourseName(b)
	if na == nb {
		return true
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
