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

const SessionCollection = "interview_sessions"

// SessionRepo persists sessions one document per code. Expiry is enforced
// by the TTL index on expires_at.
type SessionRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewSessionRepo(db *mongo.Database, ttl time.Duration) *SessionRepo {
	return &SessionRepo{col: db.Collection(SessionCollection), ttl: ttl}
}

func (r *SessionRepo) Get(ctx context.Context, code string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.col.FindOne(ctx, bson.M{"code": code}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// the TTL monitor only runs once a minute
	if s.ExpiredAt(time.Now()) {
		return nil, utils.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepo) Put(ctx context.Context, s *models.InterviewSession) error {
	s.Touch(time.Now(), r.ttl)
	_, err := r.col.ReplaceOne(ctx,
		bson.M{"code": s.Code},
		s,
		options.Replace().SetUpsert(true),
	)
	return err
}

// Create relies on the unique code index. A document the TTL monitor has
// not removed yet is replaced.
func (r *SessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	now := time.Now().UTC()
	s.Touch(now, r.ttl)
	_, err := r.col.InsertOne(ctx, s)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	filter, ok := r.expiredFilter(s.Code, now)
	if !ok {
		return utils.ErrConflict
	}
	res, err := r.col.ReplaceOne(ctx, filter, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrConflict
	}
	return nil
}

// expiredFilter matches the document for code only once it has expired.
// Without a ttl nothing expires.
func (r *SessionRepo) expiredFilter(code string, now time.Time) (bson.M, bool) {
	if r.ttl <= 0 {
		return nil, false
	}
	return bson.M{"code": code, "expires_at": bson.M{"$lte": now}}, true
}

func (r *SessionRepo) Delete(ctx context.Context, code string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"code": code})
	return err
}
