package interview

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

type finalPayload struct {
	Strengths           []string               `json:"strengths"`
	AreasForImprovement []string               `json:"areasForImprovement"`
	DetailedFeedback    string                 `json:"detailedFeedback"`
	CareerReadiness     models.CareerReadiness `json:"careerReadiness"`
}

// FinalEvaluator summarizes a whole interview. The model only contributes
// narrative text; every number is computed from the recorded answers.
type FinalEvaluator struct {
	provider llm.Provider
	log      *logrus.Logger
}

func NewFinalEvaluator(p llm.Provider, l *logrus.Logger) *FinalEvaluator {
	return &FinalEvaluator{provider: p, log: l}
}

func (f *FinalEvaluator) Summarize(ctx context.Context, answers []models.Answer) models.FinalEvaluation {
	if !anyAttempted(answers) {
		return NoAttemptEvaluation(answers)
	}

	res := llm.Call(llm.WithPurpose(ctx, "final"), f.provider, finalPrompt(answers))
	payload, gerr := llm.Decode[finalPayload](res, finalSchema)
	if gerr != nil {
		if f.log != nil {
			f.log.WithFields(logrus.Fields{
				"component": "final_evaluator",
				"answers":   len(answers),
				"reason":    fallbackReason(gerr),
			}).WithError(gerr).Warn("final evaluation fell back to default")
		}
		return DefaultFinalEvaluation(answers)
	}

	sa := assess(answers)
	out := models.FinalEvaluation{
		OverallScore:        OverallScore(sa),
		SkillAssessment:     sa,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		DetailedFeedback:    payload.DetailedFeedback,
		CareerReadiness:     payload.CareerReadiness,
		QuestionAnalysis:    analyze(answers),
		Source:              models.FinalByModel,
	}
	if out.CareerReadiness.Level == "" {
		out.CareerReadiness.Level = readinessLevel(out.OverallScore)
	}
	return out
}

func anyAttempted(answers []models.Answer) bool {
	for _, a := range answers {
		if !a.Skipped && !IsSkipped(a.Transcript) {
			return true
		}
	}
	return false
}

// assess averages the per-answer scores. Skipped answers count as zeros.
func assess(answers []models.Answer) models.SkillAssessment {
	tech := make([]float64, len(answers))
	comm := make([]float64, len(answers))
	score := make([]float64, len(answers))
	for i, a := range answers {
		tech[i] = a.Evaluation.TechnicalAccuracy
		comm[i] = a.Evaluation.Communication
		score[i] = a.Evaluation.Score
	}
	return models.SkillAssessment{
		TechnicalKnowledge:  roundTenth(mean(tech)),
		CommunicationSkills: roundTenth(mean(comm)),
		ProblemSolving:      roundTenth(mean(score)),
	}
}

func analyze(answers []models.Answer) []models.QuestionAnalysis {
	out := make([]models.QuestionAnalysis, len(answers))
	for i, a := range answers {
		out[i] = models.QuestionAnalysis{
			QuestionNumber: i + 1,
			Question:       a.Question,
			Score:          a.Evaluation.Score,
			Performance:    performance(a),
			Feedback:       a.Evaluation.Feedback,
		}
	}
	return out
}

func performance(a models.Answer) string {
	switch s := a.Evaluation.Score; {
	case a.Skipped || a.Evaluation.Source == models.EvaluationSkipped:
		return "skipped"
	case s >= 8:
		return "strong"
	case s >= 5:
		return "adequate"
	default:
		return "needs improvement"
	}
}

func readinessLevel(overall float64) string {
	switch {
	case overall >= 8:
		return "senior"
	case overall >= 6:
		return "mid"
	default:
		return "entry"
	}
}

// NoAttemptEvaluation is returned when every answer was skipped.
func NoAttemptEvaluation(answers []models.Answer) models.FinalEvaluation {
	qa := make([]models.QuestionAnalysis, len(answers))
	for i, a := range answers {
		qa[i] = models.QuestionAnalysis{
			QuestionNumber: i + 1,
			Question:       a.Question,
			Performance:    "skipped",
			Feedback:       SkippedFeedback,
		}
	}
	return models.FinalEvaluation{
		Strengths:           []string{"No strengths to evaluate - all questions were skipped"},
		AreasForImprovement: []string{"Please attempt to answer the questions to receive a proper evaluation"},
		DetailedFeedback:    "All questions were skipped, so no assessment could be made.",
		CareerReadiness: models.CareerReadiness{
			Level:          "Not assessed",
			Recommendation: "Complete an interview by answering the questions to get a career readiness assessment",
		},
		QuestionAnalysis: qa,
		Source:           models.FinalNoAttempt,
	}
}

// DefaultFinalEvaluation is the neutral mid-scale report used when the
// model cannot be reached or returns unusable output.
func DefaultFinalEvaluation(answers []models.Answer) models.FinalEvaluation {
	qa := make([]models.QuestionAnalysis, len(answers))
	for i, a := range answers {
		qa[i] = models.QuestionAnalysis{
			QuestionNumber: i + 1,
			Question:       a.Question,
			Score:          5,
			Performance:    "Unable to analyze",
			Feedback:       "Unable to provide detailed feedback",
		}
	}
	return models.FinalEvaluation{
		OverallScore: 5,
		SkillAssessment: models.SkillAssessment{
			TechnicalKnowledge:  5,
			CommunicationSkills: 5,
			ProblemSolving:      5,
		},
		Strengths:           []string{"Unable to analyze strengths"},
		AreasForImprovement: []string{"Unable to analyze areas for improvement"},
		DetailedFeedback:    "Unable to generate detailed feedback at this time.",
		CareerReadiness: models.CareerReadiness{
			Level:          "Unable to determine",
			Recommendation: "Unable to provide recommendation",
		},
		QuestionAnalysis: qa,
		Source:           models.FinalDefault,
	}
}
