package interview

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

type questionPayload struct {
	Question          string   `json:"question"`
	Topic             string   `json:"topic"`
	Difficulty        string   `json:"difficulty"`
	ExpectedDuration  string   `json:"expectedDuration"`
	Category          string   `json:"category"`
	ExpectedKeyPoints []string `json:"expectedKeyPoints"`
}

var errDuplicateQuestion = errors.New("generated question repeats an earlier one")

// Generator produces one question per call. It always returns a usable
// question: any model failure falls back to the Bank.
type Generator struct {
	provider llm.Provider
	bank     *Bank
	log      *logrus.Logger
}

func NewGenerator(p llm.Provider, bank *Bank, l *logrus.Logger) *Generator {
	if bank == nil {
		bank = NewBank(nil)
	}
	return &Generator{provider: p, bank: bank, log: l}
}

func (g *Generator) Generate(ctx context.Context, skill string, previous []string) models.Question {
	res := llm.Call(llm.WithPurpose(ctx, "question"), g.provider, questionPrompt(skill, previous))

	q, err := selectQuestion(res, skill, previous, g.bank)
	if err != nil && g.log != nil {
		g.log.WithFields(logrus.Fields{
			"component": "question_generator",
			"skill":     skill,
			"reason":    fallbackReason(err),
			"fallback":  q.Text,
		}).WithError(err).Warn("question generation fell back to library")
	}
	return q
}

// fallbackReason names why a model result was not used.
func fallbackReason(err error) string {
	var gerr *llm.GenerationError
	switch {
	case errors.As(err, &gerr):
		return string(gerr.Kind)
	case errors.Is(err, errDuplicateQuestion):
		return "duplicate"
	default:
		return "error"
	}
}

// selectQuestion decides between the model output and the library. The
// returned error only explains why the fallback was taken.
func selectQuestion(res llm.Result, skill string, previous []string, bank *Bank) (models.Question, error) {
	payload, gerr := llm.Decode[questionPayload](res, questionSchema)
	if gerr != nil {
		return bank.Fallback(skill, previous), gerr
	}
	if IsDuplicate(payload.Question, previous) {
		return bank.Fallback(skill, previous), errDuplicateQuestion
	}

	q := models.Question{
		ID:                uuid.NewString(),
		Text:              payload.Question,
		Skill:             skill,
		Topic:             payload.Topic,
		Difficulty:        payload.Difficulty,
		ExpectedDuration:  payload.ExpectedDuration,
		Category:          payload.Category,
		ExpectedKeyPoints: payload.ExpectedKeyPoints,
		Source:            models.SourceModel,
	}
	if q.ExpectedDuration == "" {
		q.ExpectedDuration = "1-2 minutes"
	}
	if q.Category == "" {
		q.Category = "fundamentals"
	}
	if q.ExpectedKeyPoints == nil {
		q.ExpectedKeyPoints = []string{}
	}
	return q, nil
}
