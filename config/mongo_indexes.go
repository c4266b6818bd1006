package config

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
)

func EnsureMongoIndexes() error {
	db, err := MongoDatabase()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// interview_sessions indexes
	sessions := db.Collection(mongorepo.SessionCollection)
	_, err = sessions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// expire at ExpiresAt (must be Date)
		{
			Keys: bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().
				SetName("ttl_expires_at").
				SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().
				SetName("uniq_code").
				SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	interviews := db.Collection(mongorepo.InterviewCollection)
	_, err = interviews.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_company_created"),
		},
	})
	if err != nil {
		return err
	}

	reports := db.Collection(mongorepo.ReportCollection)
	_, err = reports.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().
				SetName("uniq_code").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "interview_id", Value: 1}, {Key: "evaluation.overall_score", Value: -1}},
			Options: options.Index().SetName("by_interview_score"),
		},
	})
	return err
}
