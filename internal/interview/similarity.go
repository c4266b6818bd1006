package interview

import (
	"regexp"
	"strings"
)

// DuplicateThreshold is the similarity above which a generated question
// counts as a repeat of an earlier one.
const DuplicateThreshold = 0.7

var nonWord = regexp.MustCompile(`\W+`)

func tokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range nonWord.Split(strings.ToLower(s), -1) {
		if tok != "" {
			set[tok] = struct{}{}
		}
	}
	return set
}

// Similarity is the share of distinct lowercase word tokens two questions
// have in common, relative to the larger token set. It is symmetric and in
// [0, 1].
func Similarity(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)
	larger := max(len(ta), len(tb))
	if larger == 0 {
		return 0
	}

	common := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common++
		}
	}
	return float64(common) / float64(larger)
}

// IsDuplicate reports whether candidate is too close to any previous question.
func IsDuplicate(candidate string, previous []string) bool {
	for _, p := range previous {
		if Similarity(candidate, p) > DuplicateThreshold {
			return true
		}
	}
	return false
}
