package interview

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

var builtinQuestions = map[string][]string{
	"C++": {
		"Explain the difference between stack and heap memory in C++.",
		"How do you handle memory management in C++?",
		"What are smart pointers and how do they help prevent memory leaks?",
		"Explain the concept of RAII in C++.",
		"How do you implement polymorphism in C++?",
	},
	"MongoDB": {
		"Explain the difference between MongoDB and traditional SQL databases.",
		"How do you design a schema in MongoDB?",
		"What are MongoDB indexes and how do they improve performance?",
		"Explain the concept of sharding in MongoDB.",
		"How do you handle transactions in MongoDB?",
	},
	"TypeScript": {
		"Explain the benefits of using TypeScript over JavaScript.",
		"How do you handle type definitions in TypeScript?",
		"What are generics in TypeScript and when would you use them?",
		"Explain the concept of interfaces in TypeScript.",
		"How do you handle type checking in TypeScript?",
	},
}

var genericTemplates = []string{
	"Explain the core concepts of %s and their practical applications.",
	"What are the best practices you follow when working with %s?",
	"Describe a challenging problem you've solved using %s.",
	"Compare and contrast different approaches in %s.",
	"What are the common pitfalls to avoid when working with %s?",
}

const catchAllTemplate = "Tell me about your experience with %s and any recent projects."

// Bank is the offline question library used whenever generation fails.
type Bank struct {
	bySkill map[string][]string // lowercased skill
}

// NewBank merges extra over the built-in library. Entries in extra replace
// the built-in list for the same skill.
func NewBank(extra map[string][]string) *Bank {
	b := &Bank{bySkill: map[string][]string{}}
	for skill, qs := range builtinQuestions {
		b.bySkill[strings.ToLower(skill)] = qs
	}
	for skill, qs := range extra {
		if len(qs) > 0 {
			b.bySkill[strings.ToLower(strings.TrimSpace(skill))] = qs
		}
	}
	return b
}

// Candidates lists the library questions for skill, or the generic
// templates filled with the skill name.
func (b *Bank) Candidates(skill string) []string {
	if qs, ok := b.bySkill[strings.ToLower(strings.TrimSpace(skill))]; ok {
		return qs
	}
	out := make([]string, len(genericTemplates))
	for i, t := range genericTemplates {
		out[i] = fmt.Sprintf(t, skill)
	}
	return out
}

// Skills returns the skills that have a dedicated question list.
func (b *Bank) Skills() []string {
	out := make([]string, 0, len(b.bySkill))
	for s := range b.bySkill {
		out = append(out, s)
	}
	return out
}

// Pick returns the first candidate that is not a duplicate of a previous
// question, or the catch-all question for the skill.
func (b *Bank) Pick(skill string, previous []string) string {
	for _, q := range b.Candidates(skill) {
		if !IsDuplicate(q, previous) {
			return q
		}
	}
	return fmt.Sprintf(catchAllTemplate, skill)
}

// Fallback builds a complete question from the library. It never fails.
func (b *Bank) Fallback(skill string, previous []string) models.Question {
	return models.Question{
		ID:                uuid.NewString(),
		Text:              b.Pick(skill, previous),
		Skill:             skill,
		Topic:             skill,
		Difficulty:        "medium",
		ExpectedDuration:  "2-3 minutes",
		Category:          "experience",
		ExpectedKeyPoints: []string{"Technical knowledge", "Practical experience", "Challenges faced"},
		Source:            models.SourceFallback,
	}
}
