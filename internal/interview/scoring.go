package interview

import (
	"github.com/montanaflynn/stats"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

const (
	// running score weights when a confidence signal is present
	answerWeight     = 0.7
	confidenceWeight = 0.3

	// final overall score weights
	technicalWeight      = 0.6
	communicationWeight  = 0.2
	problemSolvingWeight = 0.2
)

// AnswerScore blends the evaluation score with the candidate's confidence
// signal when one was recorded.
func AnswerScore(a models.Answer) float64 {
	if a.Confidence == nil {
		return a.Evaluation.Score
	}
	return answerWeight*a.Evaluation.Score + confidenceWeight*(*a.Confidence)
}

// RunningScore is the mean AnswerScore over every recorded answer.
func RunningScore(answers []models.Answer) float64 {
	if len(answers) == 0 {
		return 0
	}
	scores := make([]float64, len(answers))
	for i, a := range answers {
		scores[i] = AnswerScore(a)
	}
	return roundTenth(mean(scores))
}

// OverallScore weights the three assessment axes into one 0..10 number.
func OverallScore(sa models.SkillAssessment) float64 {
	return roundTenth(technicalWeight*sa.TechnicalKnowledge +
		communicationWeight*sa.CommunicationSkills +
		problemSolvingWeight*sa.ProblemSolving)
}

func mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}
