package interview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
)

const reactHookJSON = `{
  "question": "What is a React hook used for?",
  "topic": "Hooks",
  "difficulty": "easy",
  "expectedDuration": "1-2 minutes",
  "category": "fundamentals",
  "expectedKeyPoints": ["state", "effects"]
}`

func TestGenerator_UsesModelQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + reactHookJSON + "\n```"})
	g := NewGenerator(mock, nil, nil)

	q := g.Generate(context.Background(), "React", nil)

	assert.Equal(t, "What is a React hook used for?", q.Text)
	assert.Equal(t, "Hooks", q.Topic)
	assert.Equal(t, "React", q.Skill)
	assert.Equal(t, []string{"state", "effects"}, q.ExpectedKeyPoints)
	assert.Equal(t, models.SourceModel, q.Source)
	assert.NotEmpty(t, q.ID)
	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Prompts[0], "React")
}

func TestGenerator_PromptListsPreviousQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: reactHookJSON})
	g := NewGenerator(mock, nil, nil)

	g.Generate(context.Background(), "React", []string{"What is JSX?"})
	assert.Contains(t, mock.Prompts[0], "What is JSX?")
}

func TestGenerator_FallbackOnProviderError(t *testing.T) {
	g := NewGenerator(llm.NewMockProvider(), nil, nil)

	q := g.Generate(context.Background(), "C++", nil)
	assert.Equal(t, models.SourceFallback, q.Source)
	assert.Equal(t, "Explain the difference between stack and heap memory in C++.", q.Text)
}

func TestGenerator_FallbackWithoutProvider(t *testing.T) {
	q := NewGenerator(nil, nil, nil).Generate(context.Background(), "SQL", nil)
	assert.Equal(t, models.SourceFallback, q.Source)
	assert.Equal(t, "SQL", q.Skill)
}

func TestGenerator_FallbackOnMalformedOutput(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Sure! Here is a question about React."})
	q := NewGenerator(mock, nil, nil).Generate(context.Background(), "React", nil)
	assert.Equal(t, models.SourceFallback, q.Source)
}

func TestGenerator_FallbackOnMissingFields(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"question": "What is React?", "topic": "basics"}`})
	q := NewGenerator(mock, nil, nil).Generate(context.Background(), "React", nil)
	assert.Equal(t, models.SourceFallback, q.Source)
}

func TestGenerator_DuplicateFallsBackWithoutRetry(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: reactHookJSON},
		llm.MockResponse{Text: reactHookJSON},
	)
	previous := []string{"What is a React hook?"}

	q := NewGenerator(mock, nil, nil).Generate(context.Background(), "React", previous)

	assert.Equal(t, models.SourceFallback, q.Source)
	assert.False(t, IsDuplicate(q.Text, previous))
	assert.Equal(t, 1, mock.CallCount())
}

func TestSelectQuestion_DefaultsOptionalFields(t *testing.T) {
	res := llm.Result{Text: `{"question": "What is an index?", "topic": "Indexes", "difficulty": "easy"}`}

	q, err := selectQuestion(res, "SQL", nil, NewBank(nil))
	require.NoError(t, err)
	assert.Equal(t, "1-2 minutes", q.ExpectedDuration)
	assert.Equal(t, "fundamentals", q.Category)
	assert.NotNil(t, q.ExpectedKeyPoints)
}

func TestSelectQuestion_ReportsReason(t *testing.T) {
	res := llm.Result{Err: &llm.GenerationError{Kind: llm.KindEmpty}}

	q, err := selectQuestion(res, "SQL", nil, NewBank(nil))
	var gerr *llm.GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, llm.KindEmpty, gerr.Kind)
	assert.Equal(t, models.SourceFallback, q.Source)
}
