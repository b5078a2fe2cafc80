package conflict

import (
	"strconv"
	"strings"
)

// MatchCertification implements the §4.8 matching rule: a required
// certification matches a teacher certification iff, case-insensitively
// and trimmed, they are exactly equal, one contains the other, or at
// least half of their keyword tokens (split on space/hyphen, each longer
// than 3 characters) coincide.
func MatchCertification(required, held string) bool {
	a := strings.ToLower(strings.TrimSpace(required))
	b := strings.ToLower(strings.TrimSpace(held))
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return keywordOverlap(a, b) >= 0.5
}

func keywordOverlap(a, b string) float64 {
	ta := tokenize(a)
	tb := tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	setB := make(map[string]bool, len(tb))
	for _, t := range tb {
		setB[t] = true
	}
	matches := 0
	for _, t := range ta {
		if setB[t] {
			matches++
		}
	}
	shorter := len(ta)
	if len(tb) < shorter {
		shorter = len(tb)
	}
	if shorter == 0 {
		return 0
	}
	return float64(matches) / float64(shorter)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 3 {
			out = append(out, f)
		}
	}
	return out
}

// AnyCertificationMatches reports whether any of requiredCerts matches any
// of the teacher's held certifications by MatchCertification.
func AnyCertificationMatches(requiredCerts []string, held []string) bool {
	for _, req := range requiredCerts {
		for _, h := range held {
			if MatchCertification(req, h) {
				return true
			}
		}
	}
	return false
}

// GradeInRange reports whether level falls within [low, high]; an empty
// bound means unbounded on that side. Grades compare numerically ("10" is
// above "9"), falling back to a lexicographic compare only if a bound or
// the level itself doesn't parse as an integer.
func GradeInRange(low, high, level string) bool {
	return gradeAtLeast(level, low) && gradeAtMost(level, high)
}

func gradeAtLeast(level, low string) bool {
	if low == "" {
		return true
	}
	lvl, errL := strconv.Atoi(level)
	lo, errB := strconv.Atoi(low)
	if errL == nil && errB == nil {
		return lvl >= lo
	}
	return level >= low
}

func gradeAtMost(level, high string) bool {
	if high == "" {
		return true
	}
	lvl, errL := strconv.Atoi(level)
	hi, errB := strconv.Atoi(high)
	if errL == nil && errB == nil {
		return lvl <= hi
	}
	return level <= high
}
