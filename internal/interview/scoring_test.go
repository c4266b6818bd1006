package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

func withScore(score float64, confidence *float64) models.Answer {
	return models.Answer{Evaluation: models.Evaluation{Score: score}, Confidence: confidence}
}

func ptr(v float64) *float64 { return &v }

func TestRunningScore(t *testing.T) {
	assert.Equal(t, 0.0, RunningScore(nil))
	assert.InDelta(t, 7.0, RunningScore([]models.Answer{withScore(8, nil), withScore(6, nil)}), 1e-9)
}

func TestRunningScore_BlendsConfidence(t *testing.T) {
	// (0.7*8 + 0.3*10 + 6) / 2
	got := RunningScore([]models.Answer{withScore(8, ptr(10)), withScore(6, nil)})
	assert.InDelta(t, 7.3, got, 1e-9)
}

func TestAnswerScore_SkippedIsZero(t *testing.T) {
	assert.Equal(t, 0.0, AnswerScore(models.Answer{Evaluation: SkippedEvaluation()}))
}

func TestOverallScore(t *testing.T) {
	got := OverallScore(models.SkillAssessment{TechnicalKnowledge: 10, CommunicationSkills: 5, ProblemSolving: 0})
	assert.InDelta(t, 7.0, got, 1e-9)
}
