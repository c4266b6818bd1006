package interview

import "strings"

const DefaultTotalQuestions = 5

// NormalizeSkills trims every skill and drops blanks, keeping order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PlanSkills returns exactly total skills, one per question: the list is
// truncated when too long and padded with its first skill when too short.
// skills must not be empty.
func PlanSkills(skills []string, total int) []string {
	out := make([]string, total)
	for i := range out {
		if i < len(skills) {
			out[i] = skills[i]
		} else {
			out[i] = skills[0]
		}
	}
	return out
}
