package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// InterviewSession is the live state of one candidate's interview, keyed by
// the candidate code.
type InterviewSession struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Code string             `bson:"code" json:"code"`

	Skills               []string      `bson:"skills" json:"skills"`
	Status               SessionStatus `bson:"status" json:"status"`
	CurrentQuestionIndex int           `bson:"current_question_index" json:"currentQuestionIndex"`
	TotalQuestions       int           `bson:"total_questions" json:"totalQuestions"`
	Questions            []Question    `bson:"questions" json:"questions"`
	Answers              []Answer      `bson:"answers" json:"answers"`
	CurrentScore         float64       `bson:"current_score" json:"currentScore"`

	// set when the code was issued to an imported candidate
	InterviewID string `bson:"interview_id,omitempty" json:"interviewId,omitempty"`
	CandidateID string `bson:"candidate_id,omitempty" json:"candidateId,omitempty"`

	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	// nil when sessions do not expire; the mongo TTL index skips documents
	// without the field
	ExpiresAt *time.Time `bson:"expires_at,omitempty" json:"expiresAt,omitempty"`
}

func (s *InterviewSession) IsCompleted() bool { return s.Status == SessionCompleted }

// Touch moves the expiry to ttl after now. A ttl <= 0 clears it.
func (s *InterviewSession) Touch(now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		s.ExpiresAt = nil
		return
	}
	exp := now.UTC().Add(ttl)
	s.ExpiresAt = &exp
}

// ExpiredAt reports whether the session had expired by now.
func (s *InterviewSession) ExpiredAt(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// QuestionTexts returns every question asked so far, in order.
func (s *InterviewSession) QuestionTexts() []string {
	out := make([]string, 0, len(s.Questions))
	for _, q := range s.Questions {
		out = append(out, q.Text)
	}
	return out
}

type QuestionSource string

const (
	SourceModel    QuestionSource = "model"
	SourceFallback QuestionSource = "fallback"
)

type Question struct {
	ID                string         `bson:"id" json:"id"`
	Text              string         `bson:"text" json:"question"`
	Skill             string         `bson:"skill" json:"skill"`
	Topic             string         `bson:"topic" json:"topic"`
	Difficulty        string         `bson:"difficulty" json:"difficulty"`
	ExpectedDuration  string         `bson:"expected_duration" json:"expectedDuration"`
	Category          string         `bson:"category" json:"category"`
	ExpectedKeyPoints []string       `bson:"expected_key_points" json:"expectedKeyPoints"`
	Index             int            `bson:"index" json:"index"`
	Number            int            `bson:"number" json:"questionNumber"` // Index + 1
	Source            QuestionSource `bson:"source" json:"source"`
}

type Answer struct {
	QuestionID    string     `bson:"question_id" json:"questionId"`
	QuestionIndex int        `bson:"question_index" json:"questionIndex"`
	Question      string     `bson:"question" json:"question"`
	Skill         string     `bson:"skill" json:"skill"`
	Transcript    string     `bson:"transcript" json:"transcript"`
	Skipped       bool       `bson:"skipped" json:"skipped"`
	Confidence    *float64   `bson:"confidence,omitempty" json:"confidence,omitempty"` // 0..10
	Evaluation    Evaluation `bson:"evaluation" json:"evaluation"`
	AnsweredAt    time.Time  `bson:"answered_at" json:"answeredAt"`
}

type EvaluationSource string

const (
	EvaluatedByModel     EvaluationSource = "model"
	EvaluatedByHeuristic EvaluationSource = "heuristic"
	EvaluationSkipped    EvaluationSource = "skipped"
)

// Evaluation scores live on a 0..10 scale.
type Evaluation struct {
	Score             float64          `bson:"score" json:"score"`
	TechnicalAccuracy float64          `bson:"technical_accuracy" json:"technicalAccuracy"`
	Communication     float64          `bson:"communication" json:"communication"`
	Feedback          string           `bson:"feedback" json:"feedback"`
	Improvements      []string         `bson:"improvements" json:"improvements"`
	Source            EvaluationSource `bson:"source" json:"source"`
}
