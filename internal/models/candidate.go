package models

import (
	"time"

	"github.com/lib/pq"
)

type CandidateStatus string

const (
	CandidateInvited   CandidateStatus = "invited"
	CandidateCompleted CandidateStatus = "completed"
)

type Candidate struct {
	ID          string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID   string          `gorm:"column:company_id;type:uuid;index" json:"companyId"`
	InterviewID string          `gorm:"column:interview_id;type:text;index;uniqueIndex:idx_candidate_interview_email" json:"interviewId"`
	Name        string          `gorm:"column:name;type:text" json:"name"`
	Email       string          `gorm:"column:email;type:text;uniqueIndex:idx_candidate_interview_email" json:"email"`
	Role        string          `gorm:"column:role;type:text" json:"role"`
	Skills      pq.StringArray  `gorm:"column:skills;type:text[]" json:"skills"`
	Code        string          `gorm:"column:code;type:varchar(6);uniqueIndex" json:"code"`
	Status      CandidateStatus `gorm:"column:status;type:text" json:"status"`
	CreatedAt   time.Time       `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	CompletedAt *time.Time      `gorm:"column:completed_at;type:timestamptz" json:"completedAt,omitempty"`
}

func (Candidate) TableName() string { return "candidates" }
