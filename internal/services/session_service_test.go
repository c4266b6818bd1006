package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/repositories/memory"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type generateCall struct {
	skill    string
	previous []string
}

type fakeGenerator struct {
	mu    sync.Mutex
	calls []generateCall
}

func (f *fakeGenerator) Generate(_ context.Context, skill string, previous []string) models.Question {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, generateCall{skill: skill, previous: append([]string(nil), previous...)})
	n := len(f.calls)
	return models.Question{
		ID:     fmt.Sprintf("q%d", n),
		Text:   fmt.Sprintf("Question %d about %s", n, skill),
		Skill:  skill,
		Source: models.SourceModel,
	}
}

type fixedEvaluator struct{ score float64 }

func (f fixedEvaluator) Evaluate(context.Context, string, string) models.Evaluation {
	return models.Evaluation{
		Score:             f.score,
		TechnicalAccuracy: f.score,
		Communication:     f.score,
		Feedback:          "ok",
		Source:            models.EvaluatedByModel,
	}
}

type fakeResolver map[string]*Invitation

func (f fakeResolver) Resolve(_ context.Context, code string) (*Invitation, error) {
	if inv, ok := f[code]; ok {
		return inv, nil
	}
	return nil, utils.ErrNotFound
}

type countingPublisher struct {
	mu    sync.Mutex
	codes []string
}

func (p *countingPublisher) PublishCompleted(_ context.Context, code string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.codes = append(p.codes, code)
	return nil
}

type fixture struct {
	svc   SessionService
	gen   *fakeGenerator
	store *memory.SessionRepo
	pub   *countingPublisher
}

func newFixture(t *testing.T, mutate func(*SessionServiceDeps)) *fixture {
	t.Helper()
	f := &fixture{
		gen:   &fakeGenerator{},
		store: memory.NewSessionRepo(time.Hour),
		pub:   &countingPublisher{},
	}
	d := SessionServiceDeps{
		Store:       f.store,
		Questions:   f.gen,
		Evaluator:   fixedEvaluator{score: 8},
		Final:       interview.NewFinalEvaluator(nil, nil),
		Completions: f.pub,
	}
	if mutate != nil {
		mutate(&d)
	}
	f.svc = NewSessionService(d)
	return f
}

func TestStart_PadsSkillsAndGeneratesFirstQuestionOnly(t *testing.T) {
	f := newFixture(t, nil)

	sess, err := f.svc.Reset(context.Background(), StartInput{Code: "ABC123", Skills: []string{"React", "SQL"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"React", "SQL", "React", "React", "React"}, sess.Skills)
	assert.Equal(t, 5, sess.TotalQuestions)
	assert.Equal(t, models.SessionActive, sess.Status)
	assert.Equal(t, 0, sess.CurrentQuestionIndex)
	require.Len(t, sess.Questions, 1)
	assert.Equal(t, 0, sess.Questions[0].Index)
	assert.Equal(t, 1, sess.Questions[0].Number)
	assert.Empty(t, sess.Answers)
	require.Len(t, f.gen.calls, 1)
	assert.Equal(t, "React", f.gen.calls[0].skill)
	assert.Empty(t, f.gen.calls[0].previous)
}

func TestStart_TruncatesSkills(t *testing.T) {
	f := newFixture(t, nil)

	sess, err := f.svc.Reset(context.Background(), StartInput{Code: "T", Skills: []string{"a", "b", "c"}, TotalQuestions: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, sess.Skills)
}

func TestStart_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "  ", Skills: []string{"Go"}})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.Reset(ctx, StartInput{Code: "X", Skills: []string{" ", ""}})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = f.svc.Reset(ctx, StartInput{Code: "X", Skills: []string{"Go"}, TotalQuestions: 500})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestCreate_IsStrictAndResetReplaces(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, StartInput{Code: "DUP", Skills: []string{"Go"}})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, StartInput{Code: "DUP", Skills: []string{"SQL"}})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	sess, err := f.svc.Reset(ctx, StartInput{Code: "DUP", Skills: []string{"SQL"}})
	require.NoError(t, err)
	assert.Equal(t, "SQL", sess.Skills[0])
}

func TestReset_DiscardsProgressAndScoreStaysRecomputable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "ABC1", Skills: []string{"React", "SQL"}})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := f.svc.Submit(ctx, SubmitInput{Code: "ABC1", QuestionIndex: i, Transcript: "an answer"})
		require.NoError(t, err)
	}

	sess, err := f.svc.Reset(ctx, StartInput{Code: "ABC1", Skills: []string{"React", "SQL"}})
	require.NoError(t, err)
	assert.Empty(t, sess.Answers)
	assert.Equal(t, 0, sess.CurrentQuestionIndex)
	assert.Len(t, sess.Questions, 1)
	assert.Equal(t, 0.0, sess.CurrentScore)

	stored, err := f.svc.Get(ctx, "ABC1")
	require.NoError(t, err)
	assert.Empty(t, stored.Answers)
	assert.Equal(t, 0, stored.CurrentQuestionIndex)

	conf := 3.0
	_, err = f.svc.Submit(ctx, SubmitInput{Code: "ABC1", QuestionIndex: 0, Transcript: "an answer", Confidence: &conf})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, SubmitInput{Code: "ABC1", QuestionIndex: 1, Skipped: true})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, SubmitInput{Code: "ABC1", QuestionIndex: 2, Transcript: "another answer"})
	require.NoError(t, err)

	stored, err = f.svc.Get(ctx, "ABC1")
	require.NoError(t, err)
	require.Len(t, stored.Answers, 3)
	assert.Equal(t, interview.RunningScore(stored.Answers), stored.CurrentScore)
}

func TestStart_ResolvesInvitation(t *testing.T) {
	f := newFixture(t, func(d *SessionServiceDeps) {
		d.Invitations = fakeResolver{"INV123": {
			InterviewID:    "iv1",
			CandidateID:    "cand1",
			Skills:         []string{"Go", "Kafka"},
			TotalQuestions: 3,
		}}
	})

	sess, err := f.svc.Reset(context.Background(), StartInput{Code: "INV123"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Kafka", "Go"}, sess.Skills)
	assert.Equal(t, "iv1", sess.InterviewID)
	assert.Equal(t, "cand1", sess.CandidateID)
}

func TestSubmit_FullInterview(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "RUN", Skills: []string{"React", "SQL"}, TotalQuestions: 3})
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, SubmitInput{Code: "RUN", QuestionIndex: 0, Transcript: "Hooks manage state."})
	require.NoError(t, err)
	require.NotNil(t, res.NextQuestion)
	assert.Equal(t, "SQL", res.NextQuestion.Skill)
	assert.Equal(t, 1, res.NextQuestion.Index)
	assert.Equal(t, &Progress{Current: 2, Total: 3}, res.Progress)
	assert.Equal(t, 8.0, res.CurrentScore)
	assert.False(t, res.IsComplete)
	assert.Equal(t, []string{"Question 1 about React"}, f.gen.calls[1].previous)

	res, err = f.svc.Submit(ctx, SubmitInput{Code: "RUN", QuestionIndex: 1, Transcript: "Joins combine tables."})
	require.NoError(t, err)
	assert.Equal(t, "React", res.NextQuestion.Skill)
	assert.Len(t, f.gen.calls[2].previous, 2)

	res, err = f.svc.Submit(ctx, SubmitInput{Code: "RUN", QuestionIndex: 2, Transcript: "Memoization avoids rerenders."})
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
	assert.Nil(t, res.NextQuestion)
	require.NotNil(t, res.FinalScore)
	assert.Equal(t, 8.0, *res.FinalScore)
	assert.Len(t, f.gen.calls, 3)
	assert.Equal(t, []string{"RUN"}, f.pub.codes)

	sess, err := f.svc.Get(ctx, "RUN")
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, sess.Status)
	assert.NotNil(t, sess.CompletedAt)
	assert.Len(t, sess.Answers, 3)
	assert.Len(t, sess.Questions, 3)

	_, err = f.svc.Submit(ctx, SubmitInput{Code: "RUN", QuestionIndex: 2, Transcript: "again"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestSubmit_SingleQuestionCompletesImmediately(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "ONE", Skills: []string{"Go"}, TotalQuestions: 1})
	require.NoError(t, err)

	res, err := f.svc.Submit(ctx, SubmitInput{Code: "ONE", QuestionIndex: 0, Transcript: "Goroutines are cheap."})
	require.NoError(t, err)
	assert.True(t, res.IsComplete)
	assert.Len(t, f.gen.calls, 1)
}

func TestSubmit_SkipScoresZero(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Reset(ctx, StartInput{Code: "SKIP", Skills: []string{"Go"}})
	require.NoError(t, err)

	conf := 9.0
	res, err := f.svc.Submit(ctx, SubmitInput{Code: "SKIP", QuestionIndex: 0, Skipped: true, Confidence: &conf})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Evaluation.Score)
	assert.Equal(t, interview.SkippedFeedback, res.Evaluation.Feedback)
	assert.Equal(t, 0.0, res.CurrentScore)

	res, err = f.svc.Submit(ctx, SubmitInput{Code: "SKIP", QuestionIndex: 1, Transcript: "   "})
	require.NoError(t, err)
	assert.Equal(t, interview.SkippedFeedback, res.Evaluation.Feedback)
}

func TestSubmit_ConfidenceBlendsIntoRunningScore(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Reset(ctx, StartInput{Code: "CONF", Skills: []string{"Go"}})
	require.NoError(t, err)

	conf := 10.0
	res, err := f.svc.Submit(ctx, SubmitInput{Code: "CONF", QuestionIndex: 0, Transcript: "answer", Confidence: &conf})
	require.NoError(t, err)
	// 0.7*8 + 0.3*10
	assert.InDelta(t, 8.6, res.CurrentScore, 1e-9)

	bad := 11.0
	_, err = f.svc.Submit(ctx, SubmitInput{Code: "CONF", QuestionIndex: 1, Transcript: "x", Confidence: &bad})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSubmit_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, SubmitInput{Code: "NOPE", QuestionIndex: 0, Transcript: "x"})
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))

	_, err = f.svc.Reset(ctx, StartInput{Code: "IDX", Skills: []string{"Go"}})
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, SubmitInput{Code: "IDX", QuestionIndex: 3, Transcript: "x"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))

	_, err = f.svc.Submit(ctx, SubmitInput{Code: "IDX", QuestionIndex: -1, Transcript: "x"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSubmit_ConcurrentSameIndexAppliesOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Reset(ctx, StartInput{Code: "RACE", Skills: []string{"Go"}})
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok, clash int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Submit(ctx, SubmitInput{Code: "RACE", QuestionIndex: 0, Transcript: "answer"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if utils.IsCode(err, utils.CodeConflict) {
				clash++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, 9, clash)

	sess, err := f.svc.Get(ctx, "RACE")
	require.NoError(t, err)
	assert.Len(t, sess.Answers, 1)
	assert.Equal(t, 1, sess.CurrentQuestionIndex)
}

func TestFinalizeAndEnd(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Finalize(ctx, nil)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	out, err := f.svc.Finalize(ctx, []models.Answer{{Question: "q", Skipped: true, Evaluation: interview.SkippedEvaluation()}})
	require.NoError(t, err)
	assert.Equal(t, models.FinalNoAttempt, out.Source)

	_, err = f.svc.Reset(ctx, StartInput{Code: "END", Skills: []string{"Go"}, TotalQuestions: 1})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, SubmitInput{Code: "END", QuestionIndex: 0, Transcript: "Channels pass values between goroutines."})
	require.NoError(t, err)

	out, err = f.svc.End(ctx, "END")
	require.NoError(t, err)
	// no provider configured, so the neutral default report is returned
	assert.Equal(t, models.FinalDefault, out.Source)
	require.Len(t, out.QuestionAnalysis, 1)

	_, err = f.svc.End(ctx, "MISSING")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestEvaluateAnswer(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.svc.EvaluateAnswer(context.Background(), "", "x")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	ev, err := f.svc.EvaluateAnswer(context.Background(), "What is Go?", "A language.")
	require.NoError(t, err)
	assert.Equal(t, 8.0, ev.Score)
}

// blockingRecorder holds the first Record call until release is closed.
type blockingRecorder struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRecorder) Record(context.Context, *models.InterviewSession, models.Answer) error {
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.entered)
		<-r.release
	}
	return nil
}

func TestSubmit_RecordingDoesNotHoldTheCodeLock(t *testing.T) {
	rec := &blockingRecorder{entered: make(chan struct{}), release: make(chan struct{})}
	f := newFixture(t, func(d *SessionServiceDeps) { d.Recorder = rec })
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "LOG1", Skills: []string{"Go"}, TotalQuestions: 3})
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, SubmitInput{Code: "LOG1", QuestionIndex: 0, Transcript: "first"})
		firstDone <- err
	}()
	<-rec.entered

	secondDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(ctx, SubmitInput{Code: "LOG1", QuestionIndex: 1, Transcript: "second"})
		secondDone <- err
	}()

	select {
	case err := <-secondDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("second submit waited on the first answer's recording")
	}

	close(rec.release)
	require.NoError(t, <-firstDone)

	sess, err := f.svc.Get(ctx, "LOG1")
	require.NoError(t, err)
	assert.Len(t, sess.Answers, 2)
}

func TestStart_LowercaseInvitationCodeUsesIssuedCode(t *testing.T) {
	f := newFixture(t, func(d *SessionServiceDeps) {
		d.Invitations = caseInsensitiveResolver{"INV234": {
			Code:           "INV234",
			InterviewID:    "iv1",
			CandidateID:    "cand1",
			Skills:         []string{"Go"},
			TotalQuestions: 2,
		}}
	})
	ctx := context.Background()

	sess, err := f.svc.Reset(ctx, StartInput{Code: " inv234 "})
	require.NoError(t, err)
	assert.Equal(t, "INV234", sess.Code)
	assert.Equal(t, "iv1", sess.InterviewID)

	got, err := f.svc.Get(ctx, "inv234")
	require.NoError(t, err)
	assert.Equal(t, "INV234", got.Code)

	res, err := f.svc.Submit(ctx, SubmitInput{Code: "inv234", QuestionIndex: 0, Transcript: "answer"})
	require.NoError(t, err)
	require.NotNil(t, res.NextQuestion)

	stored, err := f.svc.Get(ctx, "INV234")
	require.NoError(t, err)
	assert.Len(t, stored.Answers, 1)
}

func TestGet_ExactPracticeCodeWinsOverUppercase(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Reset(ctx, StartInput{Code: "abc", Skills: []string{"Go"}})
	require.NoError(t, err)
	_, err = f.svc.Reset(ctx, StartInput{Code: "ABC", Skills: []string{"SQL"}})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Go", got.Skills[0])
}

type caseInsensitiveResolver map[string]*Invitation

func (r caseInsensitiveResolver) Resolve(_ context.Context, code string) (*Invitation, error) {
	if inv, ok := r[strings.ToUpper(code)]; ok {
		return inv, nil
	}
	return nil, utils.ErrNotFound
}
