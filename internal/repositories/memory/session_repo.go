package memory

import (
	"context"
	"sync"
	"time"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

// SessionRepo keeps sessions in process memory. Entries expire ttl after
// their last write; Get treats an expired entry as missing and Sweep drops
// them.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*models.InterviewSession
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepo(ttl time.Duration) *SessionRepo {
	return &SessionRepo{
		sessions: map[string]*models.InterviewSession{},
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *SessionRepo) Get(_ context.Context, code string) (*models.InterviewSession, error) {
	r.mu.RLock()
	s, ok := r.sessions[code]
	r.mu.RUnlock()

	if !ok || r.expired(s) {
		return nil, utils.ErrNotFound
	}
	return clone(s), nil
}

func (r *SessionRepo) Put(_ context.Context, s *models.InterviewSession) error {
	s.Touch(r.now(), r.ttl)
	cp := clone(s)

	r.mu.Lock()
	r.sessions[s.Code] = cp
	r.mu.Unlock()
	return nil
}

// Create fails with utils.ErrConflict while a live session holds the code.
func (r *SessionRepo) Create(_ context.Context, s *models.InterviewSession) error {
	s.Touch(r.now(), r.ttl)
	cp := clone(s)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.Code]; ok && !r.expired(cur) {
		return utils.ErrConflict
	}
	r.sessions[s.Code] = cp
	return nil
}

func (r *SessionRepo) Delete(_ context.Context, code string) error {
	r.mu.Lock()
	delete(r.sessions, code)
	r.mu.Unlock()
	return nil
}

// Sweep removes expired sessions and returns how many were dropped.
func (r *SessionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for code, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, code)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (r *SessionRepo) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.ttl <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRepo) expired(s *models.InterviewSession) bool {
	return s.ExpiredAt(r.now())
}

// clone copies the session deep enough that callers never share slices
// with the stored value.
func clone(s *models.InterviewSession) *models.InterviewSession {
	cp := *s
	cp.Skills = append([]string(nil), s.Skills...)
	cp.Questions = append([]models.Question(nil), s.Questions...)
	cp.Answers = append([]models.Answer(nil), s.Answers...)
	return &cp
}
