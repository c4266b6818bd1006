package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interview is a company-defined interview that candidates are invited to.
type Interview struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyID       string             `bson:"company_id" json:"companyId"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	Roles           []string           `bson:"roles" json:"roles"`
	Skills          []string           `bson:"skills" json:"skills"`
	Difficulty      string             `bson:"difficulty" json:"difficulty"`
	TotalQuestions  int                `bson:"total_questions" json:"numQuestions"`
	DurationMinutes int                `bson:"duration_minutes" json:"durationMinutes"`
	ScheduledAt     *time.Time         `bson:"scheduled_at,omitempty" json:"scheduledAt,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updatedAt"`
}
