package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type InterviewRepository interface {
	Create(ctx context.Context, iv *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	ListByCompany(ctx context.Context, companyID string, limit int64) ([]models.Interview, error)
	Update(ctx context.Context, iv *models.Interview) error
	Delete(ctx context.Context, id string) error
}

const InterviewCollection = "interviews"

type interviewRepo struct {
	col *mongo.Collection
}

func NewInterviewRepo(db *mongo.Database) InterviewRepository {
	return &interviewRepo{col: db.Collection(InterviewCollection)}
}

func (r *interviewRepo) Create(ctx context.Context, iv *models.Interview) error {
	now := time.Now().UTC()
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = now
	}
	iv.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, iv)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		iv.ID = id
	}
	return nil
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.ErrNotFound
	}

	var iv models.Interview
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&iv)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &iv, err
}

func (r *interviewRepo) ListByCompany(ctx context.Context, companyID string, limit int64) ([]models.Interview, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"company_id": companyID},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Interview{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *interviewRepo) Update(ctx context.Context, iv *models.Interview) error {
	iv.UpdatedAt = time.Now().UTC()
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": iv.ID},
		bson.M{"$set": bson.M{
			"name":             iv.Name,
			"description":      iv.Description,
			"roles":            iv.Roles,
			"skills":           iv.Skills,
			"difficulty":       iv.Difficulty,
			"total_questions":  iv.TotalQuestions,
			"duration_minutes": iv.DurationMinutes,
			"scheduled_at":     iv.ScheduledAt,
			"updated_at":       iv.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *interviewRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}
