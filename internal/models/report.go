package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Report is the stored final evaluation of a completed candidate session.
type Report struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code         string             `bson:"code" json:"code"`
	InterviewID  string             `bson:"interview_id" json:"interviewId"`
	CandidateID  string             `bson:"candidate_id" json:"candidateId"`
	Skills       []string           `bson:"skills" json:"skills"`
	CurrentScore float64            `bson:"current_score" json:"currentScore"`
	Evaluation   FinalEvaluation    `bson:"evaluation" json:"evaluation"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
