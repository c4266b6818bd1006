package interview

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

func TestEvaluator_SkipsWithoutModelCall(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"score": 9, "feedback": "great"}`})
	e := NewEvaluator(mock, nil)

	for _, answer := range []string{"", "   ", "Question skipped by user"} {
		ev := e.Evaluate(context.Background(), "What is SQL?", answer)
		assert.Equal(t, 0.0, ev.Score)
		assert.Equal(t, SkippedFeedback, ev.Feedback)
		assert.Equal(t, models.EvaluationSkipped, ev.Source)
	}
	assert.Equal(t, 0, mock.CallCount())
}

func TestEvaluator_UsesModelScores(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + `{
		"score": 8,
		"technicalAccuracy": 7.5,
		"communication": 9,
		"feedback": "Clear and correct",
		"improvements": ["Mention indexes"]
	}` + "\n```"})

	ev := NewEvaluator(mock, nil).Evaluate(context.Background(), "What is SQL?", "A query language for relational data.")

	assert.Equal(t, models.Evaluation{
		Score:             8,
		TechnicalAccuracy: 7.5,
		Communication:     9,
		Feedback:          "Clear and correct",
		Improvements:      []string{"Mention indexes"},
		Source:            models.EvaluatedByModel,
	}, ev)
	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Prompts[0], "A query language for relational data.")
}

func TestEvaluator_ClarityAndMissingSubScores(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"score": 6, "clarity": 4, "feedback": "ok"}`})

	ev := NewEvaluator(mock, nil).Evaluate(context.Background(), "q", "some answer")
	assert.Equal(t, 6.0, ev.TechnicalAccuracy)
	assert.Equal(t, 4.0, ev.Communication)
	assert.NotNil(t, ev.Improvements)
}

func TestEvaluator_OutOfRangeScoreFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"score": 42, "feedback": "wow"}`})
	answer := "I would add an index to the database table."

	ev := NewEvaluator(mock, nil).Evaluate(context.Background(), "q", answer)
	assert.Equal(t, HeuristicEvaluation(answer), ev)
}

func TestEvaluator_ProviderFailureFallsBack(t *testing.T) {
	answer := "I would write a function with a loop."
	ev := NewEvaluator(llm.NewMockProvider(), nil).Evaluate(context.Background(), "q", answer)

	assert.Equal(t, models.EvaluatedByHeuristic, ev.Source)
	assert.Equal(t, "Answer shows some technical understanding", ev.Feedback)
	assert.Len(t, ev.Improvements, 3)
}

func TestHeuristicEvaluation(t *testing.T) {
	plain := HeuristicEvaluation("I would use a hash map.")
	assert.Equal(t, "Answer needs more technical depth", plain.Feedback)
	assert.Equal(t, 3.0, plain.TechnicalAccuracy)
	assert.Equal(t, 4.6, plain.Score)
	assert.Equal(t, 5.1, plain.Communication)

	technical := HeuristicEvaluation("The algorithm reads the database index.")
	assert.Equal(t, "Answer shows some technical understanding", technical.Feedback)
	assert.Equal(t, 9.0, technical.TechnicalAccuracy)
	assert.Greater(t, technical.Score, plain.Score)
}

func TestHeuristicEvaluation_LongerScoresHigherAndCaps(t *testing.T) {
	short := HeuristicEvaluation(strings.Repeat("word ", 20))
	long := HeuristicEvaluation(strings.Repeat("word ", 200))
	huge := HeuristicEvaluation(strings.Repeat("api function class loop ", 1000))

	assert.Greater(t, long.Score, short.Score)
	assert.LessOrEqual(t, huge.Score, 10.0)
	assert.LessOrEqual(t, huge.Communication, 10.0)
	assert.Equal(t, HeuristicEvaluation("same input"), HeuristicEvaluation("same input"))
}
