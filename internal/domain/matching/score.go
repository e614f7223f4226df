// Package matching computes the skill-match percentage shown on an
// application: how much of a posting's required skill set the employee
// already covers.
package matching

import (
	"math"
	"strings"
)

// Score returns round(100 * |employee ∩ required| / |required|), clamped to
// 0..100. A posting with no required skills scores 0. Skills compare
// case-insensitively with surrounding whitespace ignored; duplicates count
// once.
func Score(employeeSkills, requiredSkills []string) int {
	required := normalizeSet(requiredSkills)
	if len(required) == 0 {
		return 0
	}

	have := normalizeSet(employeeSkills)

	matched := 0
	for s := range required {
		if _, ok := have[s]; ok {
			matched++
		}
	}

	score := int(math.Round(100 * float64(matched) / float64(len(required))))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func normalizeSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out[s] = struct{}{}
	}
	return out
}
