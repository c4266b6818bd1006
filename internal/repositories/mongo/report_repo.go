package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type ReportRepository interface {
	Upsert(ctx context.Context, r *models.Report) error
	GetByCode(ctx context.Context, code string) (*models.Report, error)
	ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.Report, error)
}

const ReportCollection = "reports"

type reportRepo struct {
	col *mongo.Collection
}

func NewReportRepo(db *mongo.Database) ReportRepository {
	return &reportRepo{col: db.Collection(ReportCollection)}
}

// Upsert keeps one report per code, so a redelivered completion event
// overwrites instead of duplicating.
func (r *reportRepo) Upsert(ctx context.Context, rep *models.Report) error {
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"code": rep.Code},
		rep,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *reportRepo) GetByCode(ctx context.Context, code string) (*models.Report, error) {
	var rep models.Report
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&rep)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &rep, err
}

func (r *reportRepo) ListByInterview(ctx context.Context, interviewID string, limit int64) ([]models.Report, error) {
	if limit <= 0 {
		limit = 200
	}

	cur, err := r.col.Find(ctx,
		bson.M{"interview_id": interviewID},
		options.Find().
			SetSort(bson.D{{Key: "evaluation.overall_score", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Report{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
