package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

// SessionStore is implemented by the memory, redis and mongo session repos.
// Get returns utils.ErrNotFound for unknown or expired codes and Create
// returns utils.ErrConflict when a live session already holds the code.
type SessionStore interface {
	Get(ctx context.Context, code string) (*models.InterviewSession, error)
	Create(ctx context.Context, s *models.InterviewSession) error
	Put(ctx context.Context, s *models.InterviewSession) error
	Delete(ctx context.Context, code string) error
}

type QuestionGenerator interface {
	Generate(ctx context.Context, skill string, previous []string) models.Question
}

type AnswerEvaluator interface {
	Evaluate(ctx context.Context, question, answer string) models.Evaluation
}

type FinalSummarizer interface {
	Summarize(ctx context.Context, answers []models.Answer) models.FinalEvaluation
}

// Invitation is what a code issued to an imported candidate resolves to.
type Invitation struct {
	Code           string // as issued; may differ in case from what was typed
	InterviewID    string
	CandidateID    string
	Skills         []string
	TotalQuestions int
}

// InvitationResolver returns utils.ErrNotFound for codes that were not issued
// to a candidate.
type InvitationResolver interface {
	Resolve(ctx context.Context, code string) (*Invitation, error)
}

type CompletionPublisher interface {
	PublishCompleted(ctx context.Context, code string) error
}

type AnswerRecorder interface {
	Record(ctx context.Context, s *models.InterviewSession, a models.Answer) error
}

type StartInput struct {
	Code           string
	Skills         []string
	TotalQuestions int
}

type SubmitInput struct {
	Code          string
	QuestionIndex int
	Transcript    string
	Skipped       bool
	Confidence    *float64 // 0..10, optional
}

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type SubmitResult struct {
	Evaluation   models.Evaluation `json:"evaluation"`
	NextQuestion *models.Question  `json:"nextQuestion,omitempty"`
	Progress     *Progress         `json:"progress,omitempty"`
	CurrentScore float64           `json:"currentScore"`
	IsComplete   bool              `json:"isComplete,omitempty"`
	FinalScore   *float64          `json:"finalScore,omitempty"`
}

type SessionService interface {
	// Create fails with CONFLICT when the code already has a session.
	Create(ctx context.Context, in StartInput) (*models.InterviewSession, error)
	// Reset replaces any existing session for the code.
	Reset(ctx context.Context, in StartInput) (*models.InterviewSession, error)
	Get(ctx context.Context, code string) (*models.InterviewSession, error)
	Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (models.Evaluation, error)
	Finalize(ctx context.Context, answers []models.Answer) (*models.FinalEvaluation, error)
	End(ctx context.Context, code string) (*models.FinalEvaluation, error)
}

type SessionServiceDeps struct {
	Store     SessionStore
	Questions QuestionGenerator
	Evaluator AnswerEvaluator
	Final     FinalSummarizer

	// optional
	Invitations InvitationResolver
	Completions CompletionPublisher
	Recorder    AnswerRecorder

	DefaultTotalQuestions int
	MaxTotalQuestions     int
	Logger                *logrus.Logger
}

type sessionService struct {
	d     SessionServiceDeps
	locks *keyedMutex
	now   func() time.Time
}

func NewSessionService(d SessionServiceDeps) SessionService {
	if d.DefaultTotalQuestions <= 0 {
		d.DefaultTotalQuestions = interview.DefaultTotalQuestions
	}
	if d.MaxTotalQuestions < d.DefaultTotalQuestions {
		d.MaxTotalQuestions = max(20, d.DefaultTotalQuestions)
	}
	if d.Logger == nil {
		d.Logger = logrus.StandardLogger()
	}
	return &sessionService{d: d, locks: newKeyedMutex(), now: time.Now}
}

func (s *sessionService) Create(ctx context.Context, in StartInput) (*models.InterviewSession, error) {
	return s.start(ctx, "SessionService.Create", in, false)
}

func (s *sessionService) Reset(ctx context.Context, in StartInput) (*models.InterviewSession, error) {
	return s.start(ctx, "SessionService.Reset", in, true)
}

func (s *sessionService) start(ctx context.Context, op string, in StartInput, replace bool) (*models.InterviewSession, error) {
	code := utils.NormalizeCode(in.Code)
	if code == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "code is required", nil)
	}
	if in.TotalQuestions < 0 || in.TotalQuestions > s.d.MaxTotalQuestions {
		return nil, utils.E(utils.CodeInvalidArgument, op, "totalQuestions is out of range", nil)
	}

	skills := interview.NormalizeSkills(in.Skills)
	total := in.TotalQuestions

	var inv *Invitation
	if s.d.Invitations != nil {
		got, err := s.d.Invitations.Resolve(ctx, code)
		switch {
		case err == nil:
			inv = got
		case !errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeInternal, op, "failed to resolve interview code", err)
		}
	}
	if inv != nil {
		if inv.Code != "" {
			code = inv.Code
		}
		if len(skills) == 0 {
			skills = interview.NormalizeSkills(inv.Skills)
		}
		if total == 0 {
			total = inv.TotalQuestions
		}
	}
	if len(skills) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "at least one skill is required", nil)
	}
	if total <= 0 || total > s.d.MaxTotalQuestions {
		total = s.d.DefaultTotalQuestions
	}

	unlock := s.locks.Lock(code)
	defer unlock()

	plan := interview.PlanSkills(skills, total)
	first := s.d.Questions.Generate(ctx, plan[0], nil)
	first.Index, first.Number = 0, 1

	now := s.now().UTC()
	sess := &models.InterviewSession{
		Code:                 code,
		Skills:               plan,
		Status:               models.SessionActive,
		CurrentQuestionIndex: 0,
		TotalQuestions:       total,
		Questions:            []models.Question{first},
		Answers:              []models.Answer{},
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if inv != nil {
		sess.InterviewID = inv.InterviewID
		sess.CandidateID = inv.CandidateID
	}

	save := s.d.Store.Create
	if replace {
		save = s.d.Store.Put
	}
	if err := save(ctx, sess); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "an interview already exists for this code", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to save session", err)
	}

	s.d.Logger.WithFields(logrus.Fields{
		"code":    code,
		"total":   total,
		"replace": replace,
		"source":  first.Source,
	}).Info("interview started")
	return sess, nil
}

func (s *sessionService) Get(ctx context.Context, code string) (*models.InterviewSession, error) {
	const op = "SessionService.Get"

	code = utils.NormalizeCode(code)
	if code == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "code is required", nil)
	}
	sess, err := s.d.Store.Get(ctx, s.canonicalCode(ctx, code))
	if err != nil {
		return nil, utils.FromRepo(op, err, "interview session not found", "failed to load session")
	}
	return sess, nil
}

// canonicalCode maps a code typed in the wrong case onto the uppercase
// session started from an issued candidate code. An exact match wins.
func (s *sessionService) canonicalCode(ctx context.Context, code string) string {
	upper := strings.ToUpper(code)
	if upper == code {
		return code
	}
	if _, err := s.d.Store.Get(ctx, code); !errors.Is(err, utils.ErrNotFound) {
		return code
	}
	if _, err := s.d.Store.Get(ctx, upper); err == nil {
		return upper
	}
	return code
}

func (s *sessionService) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	const op = "SessionService.Submit"

	code := utils.NormalizeCode(in.Code)
	if code == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "code is required", nil)
	}
	if in.QuestionIndex < 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "questionIndex must not be negative", nil)
	}
	if in.Confidence != nil && (*in.Confidence < 0 || *in.Confidence > 10) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "confidence must be between 0 and 10", nil)
	}

	code = s.canonicalCode(ctx, code)
	unlock := s.locks.Lock(code)
	sess, answer, err := s.applyAnswer(ctx, op, code, in)
	unlock()
	if err != nil {
		return nil, err
	}

	eval := answer.Evaluation
	log := s.d.Logger.WithFields(logrus.Fields{
		"code":           code,
		"question_index": answer.QuestionIndex,
		"skipped":        answer.Skipped,
		"score":          eval.Score,
		"eval_source":    eval.Source,
	})
	log.Info("answer recorded")

	// best-effort side effects run without holding the code lock
	if s.d.Recorder != nil {
		if err := s.d.Recorder.Record(ctx, sess, answer); err != nil {
			log.WithError(err).Warn("failed to record answer log")
		}
	}

	res := &SubmitResult{Evaluation: eval, CurrentScore: sess.CurrentScore}
	if sess.IsCompleted() {
		final := sess.CurrentScore
		res.IsComplete = true
		res.FinalScore = &final

		if s.d.Completions != nil {
			if err := s.d.Completions.PublishCompleted(ctx, code); err != nil {
				log.WithError(err).Warn("failed to publish interview completion")
			}
		}
		return res, nil
	}

	next := sess.Questions[sess.CurrentQuestionIndex]
	res.NextQuestion = &next
	res.Progress = &Progress{Current: next.Number, Total: sess.TotalQuestions}
	return res, nil
}

// applyAnswer scores the current question, advances the session and saves
// it. The caller holds the lock for code.
func (s *sessionService) applyAnswer(ctx context.Context, op, code string, in SubmitInput) (*models.InterviewSession, models.Answer, error) {
	sess, err := s.d.Store.Get(ctx, code)
	if err != nil {
		return nil, models.Answer{}, utils.FromRepo(op, err, "interview session not found", "failed to load session")
	}
	if sess.IsCompleted() {
		return nil, models.Answer{}, utils.E(utils.CodeConflict, op, "interview is already completed", nil)
	}
	idx := sess.CurrentQuestionIndex
	if in.QuestionIndex != idx {
		return nil, models.Answer{}, utils.E(utils.CodeConflict, op, "questionIndex does not match the current question", nil)
	}
	if idx >= len(sess.Questions) || idx >= len(sess.Skills) {
		return nil, models.Answer{}, utils.E(utils.CodeInternal, op, "session state is inconsistent", nil)
	}

	question := sess.Questions[idx]
	skipped := in.Skipped || interview.IsSkipped(in.Transcript)
	last := idx >= sess.TotalQuestions-1

	// scoring and the next question are independent model calls
	var (
		wg   sync.WaitGroup
		eval models.Evaluation
		next models.Question
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		if skipped {
			eval = interview.SkippedEvaluation()
		} else {
			eval = s.d.Evaluator.Evaluate(ctx, question.Text, in.Transcript)
		}
	}()
	if !last {
		previous := sess.QuestionTexts()
		wg.Add(1)
		go func() {
			defer wg.Done()
			next = s.d.Questions.Generate(ctx, sess.Skills[idx+1], previous)
		}()
	}
	wg.Wait()

	now := s.now().UTC()
	answer := models.Answer{
		QuestionID:    question.ID,
		QuestionIndex: idx,
		Question:      question.Text,
		Skill:         question.Skill,
		Transcript:    in.Transcript,
		Skipped:       skipped,
		Evaluation:    eval,
		AnsweredAt:    now,
	}
	if !skipped {
		answer.Confidence = in.Confidence
	}

	sess.Answers = append(sess.Answers, answer)
	sess.CurrentScore = interview.RunningScore(sess.Answers)
	sess.UpdatedAt = now
	if last {
		sess.Status = models.SessionCompleted
		sess.CompletedAt = &now
	} else {
		next.Index, next.Number = idx+1, idx+2
		sess.Questions = append(sess.Questions, next)
		sess.CurrentQuestionIndex = idx + 1
	}

	if err := s.d.Store.Put(ctx, sess); err != nil {
		return nil, models.Answer{}, utils.E(utils.CodeInternal, op, "failed to save session", err)
	}
	return sess, answer, nil
}

func (s *sessionService) EvaluateAnswer(ctx context.Context, question, answer string) (models.Evaluation, error) {
	const op = "SessionService.EvaluateAnswer"

	if question == "" {
		return models.Evaluation{}, utils.E(utils.CodeInvalidArgument, op, "question is required", nil)
	}
	return s.d.Evaluator.Evaluate(ctx, question, answer), nil
}

func (s *sessionService) Finalize(ctx context.Context, answers []models.Answer) (*models.FinalEvaluation, error) {
	const op = "SessionService.Finalize"

	if len(answers) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "answers are required", nil)
	}
	out := s.d.Final.Summarize(ctx, answers)
	return &out, nil
}

func (s *sessionService) End(ctx context.Context, code string) (*models.FinalEvaluation, error) {
	sess, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	out := s.d.Final.Summarize(ctx, sess.Answers)
	return &out, nil
}
