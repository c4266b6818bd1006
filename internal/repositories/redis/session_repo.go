package redis

import (
	"context"
	"time"

	"github.com/AtharvaKhot17/QuickHireAI/internal/cache"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

const sessionKeyPrefix = "interview:session:"

// SessionRepo stores each session as one JSON value whose Redis TTL is
// refreshed on every write.
type SessionRepo struct {
	c   cache.Cache
	ttl time.Duration
}

func NewSessionRepo(c cache.Cache, ttl time.Duration) *SessionRepo {
	return &SessionRepo{c: c, ttl: ttl}
}

func (r *SessionRepo) Get(ctx context.Context, code string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	hit, err := r.c.GetJSON(ctx, sessionKeyPrefix+code, &s)
	if err != nil {
		return nil, err
	}
	if !hit {
		return nil, utils.ErrNotFound
	}
	return &s, nil
}

func (r *SessionRepo) Put(ctx context.Context, s *models.InterviewSession) error {
	s.Touch(time.Now(), r.ttl)
	return r.c.SetJSON(ctx, sessionKeyPrefix+s.Code, s, r.ttl)
}

// Create fails with utils.ErrConflict when the code already has a session.
func (r *SessionRepo) Create(ctx context.Context, s *models.InterviewSession) error {
	s.Touch(time.Now(), r.ttl)
	ok, err := r.c.SetJSONNX(ctx, sessionKeyPrefix+s.Code, s, r.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return utils.ErrConflict
	}
	return nil
}

func (r *SessionRepo) Delete(ctx context.Context, code string) error {
	return r.c.Del(ctx, sessionKeyPrefix+code)
}
