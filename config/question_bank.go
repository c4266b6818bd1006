package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// QuestionBankFile is the YAML layout of QUESTION_BANK_PATH:
//
//	skills:
//	  go:
//	    - "How does the Go scheduler multiplex goroutines onto threads?"
type QuestionBankFile struct {
	Skills map[string][]string `yaml:"skills"`
}

// LoadQuestionBank reads extra fallback questions keyed by skill. Skill names
// are matched case-insensitively by the bank.
func LoadQuestionBank(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	return ParseQuestionBank(data)
}

func ParseQuestionBank(data []byte) (map[string][]string, error) {
	var f QuestionBankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(f.Skills) == 0 {
		return nil, fmt.Errorf("question bank has no skills")
	}

	out := make(map[string][]string, len(f.Skills))
	for skill, questions := range f.Skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			return nil, fmt.Errorf("question bank has an empty skill name")
		}
		var kept []string
		for _, q := range questions {
			if q = strings.TrimSpace(q); q != "" {
				kept = append(kept, q)
			}
		}
		if len(kept) == 0 {
			return nil, fmt.Errorf("skill %q has no questions", skill)
		}
		out[skill] = kept
	}
	return out, nil
}
