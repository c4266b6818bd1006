package interview

import (
	"context"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

const SkippedFeedback = "Question skipped"

var technicalTerms = regexp.MustCompile(`(?i)\b(function|class|method|variable|loop|condition|algorithm|data structure|database|api|framework|index|query|cache|thread|complexity|memory)s?\b`)

type evaluationPayload struct {
	Score             float64  `json:"score"`
	TechnicalAccuracy *float64 `json:"technicalAccuracy"`
	Communication     *float64 `json:"communication"`
	Clarity           *float64 `json:"clarity"`
	Feedback          string   `json:"feedback"`
	Improvements      []string `json:"improvements"`
}

// Evaluator scores one answer against its question.
type Evaluator struct {
	provider llm.Provider
	log      *logrus.Logger
}

func NewEvaluator(p llm.Provider, l *logrus.Logger) *Evaluator {
	return &Evaluator{provider: p, log: l}
}

// IsSkipped reports whether an answer carries no content worth scoring.
func IsSkipped(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "" || strings.HasPrefix(a, "question skipped")
}

// Evaluate never fails. Skipped answers score zero without a model call and
// a failed model call yields the heuristic evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, question, answer string) models.Evaluation {
	if IsSkipped(answer) {
		return SkippedEvaluation()
	}

	res := llm.Call(llm.WithPurpose(ctx, "evaluation"), e.provider, evaluationPrompt(question, answer))
	payload, gerr := llm.Decode[evaluationPayload](res, evaluationSchema)
	if gerr != nil {
		if e.log != nil {
			e.log.WithFields(logrus.Fields{
				"component": "answer_evaluator",
				"reason":    fallbackReason(gerr),
			}).WithError(gerr).Warn("answer evaluation fell back to heuristic")
		}
		return HeuristicEvaluation(answer)
	}
	return payload.toEvaluation()
}

func (p evaluationPayload) toEvaluation() models.Evaluation {
	tech := p.Score
	if p.TechnicalAccuracy != nil {
		tech = *p.TechnicalAccuracy
	}
	comm := p.Score
	switch {
	case p.Communication != nil:
		comm = *p.Communication
	case p.Clarity != nil:
		comm = *p.Clarity
	}
	improvements := p.Improvements
	if improvements == nil {
		improvements = []string{}
	}
	return models.Evaluation{
		Score:             clampScore(p.Score),
		TechnicalAccuracy: clampScore(tech),
		Communication:     clampScore(comm),
		Feedback:          p.Feedback,
		Improvements:      improvements,
		Source:            models.EvaluatedByModel,
	}
}

func SkippedEvaluation() models.Evaluation {
	return models.Evaluation{
		Score:        0,
		Feedback:     SkippedFeedback,
		Improvements: []string{"Please attempt to answer the question"},
		Source:       models.EvaluationSkipped,
	}
}

// HeuristicEvaluation scores by answer length blended with a technical
// vocabulary match. It is deterministic.
func HeuristicEvaluation(answer string) models.Evaluation {
	n := float64(utf8.RuneCountInString(strings.TrimSpace(answer)))

	terms := map[string]struct{}{}
	for _, m := range technicalTerms.FindAllStringSubmatch(answer, -1) {
		terms[strings.ToLower(m[1])] = struct{}{}
	}

	lengthScore := math.Min(5+n/100, 10)
	keywordScore := math.Min(3+2*float64(len(terms)), 10)

	feedback := "Answer needs more technical depth"
	if len(terms) > 0 {
		feedback = "Answer shows some technical understanding"
	}

	return models.Evaluation{
		Score:             roundTenth(0.7*lengthScore + 0.3*keywordScore),
		TechnicalAccuracy: keywordScore,
		Communication:     roundTenth(math.Min(5+n/200, 10)),
		Feedback:          feedback,
		Improvements: []string{
			"Provide more specific examples",
			"Explain technical concepts in more detail",
			"Structure your answer more clearly",
		},
		Source: models.EvaluatedByHeuristic,
	}
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
