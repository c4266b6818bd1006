package models

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// AnswerLog is the durable transcript of one answered question.
type AnswerLog struct {
	ID            string           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Code          string           `gorm:"column:code;type:varchar(64);index" json:"code"`
	InterviewID   string           `gorm:"column:interview_id;type:text;index" json:"interviewId,omitempty"`
	QuestionIndex int              `gorm:"column:question_index;type:integer" json:"questionIndex"`
	Question      string           `gorm:"column:question;type:text" json:"question"`
	Transcript    string           `gorm:"column:transcript;type:text" json:"transcript"`
	Score         float64          `gorm:"column:score;type:double precision" json:"score"`
	Skipped       bool             `gorm:"column:skipped;type:boolean" json:"skipped"`
	Embedding     *pgvector.Vector `gorm:"column:embedding;type:vector(768)" json:"-"`
	Evaluation    datatypes.JSON   `gorm:"column:evaluation;type:jsonb" json:"evaluation"`
	CreatedAt     time.Time        `gorm:"column:created_at;type:timestamptz;index" json:"createdAt"`
}

func (AnswerLog) TableName() string { return "answer_logs" }
