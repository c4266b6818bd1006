package redis

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = b
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) SetJSONNX(ctx context.Context, key string, val any, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	_, exists := f.data[key]
	f.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, f.SetJSON(ctx, key, val, ttl)
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func TestSessionRepo_RoundTripUsesNamespacedKey(t *testing.T) {
	ctx := context.Background()
	fc := newFakeCache()
	r := NewSessionRepo(fc, 2*time.Hour)

	conf := 7.5
	in := &models.InterviewSession{
		Code:    "QH42AB",
		Skills:  []string{"React", "SQL"},
		Status:  models.SessionActive,
		Answers: []models.Answer{{QuestionIndex: 0, Confidence: &conf}},
	}
	require.NoError(t, r.Put(ctx, in))
	assert.Equal(t, 2*time.Hour, fc.ttls["interview:session:QH42AB"])

	got, err := r.Get(ctx, "QH42AB")
	require.NoError(t, err)
	assert.Equal(t, in.Skills, got.Skills)
	require.Len(t, got.Answers, 1)
	assert.Equal(t, 7.5, *got.Answers[0].Confidence)

	require.NoError(t, r.Delete(ctx, "QH42AB"))
	_, err = r.Get(ctx, "QH42AB")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSessionRepo_CreateIsExclusive(t *testing.T) {
	ctx := context.Background()
	fc := newFakeCache()
	r := NewSessionRepo(fc, time.Hour)

	require.NoError(t, r.Create(ctx, &models.InterviewSession{Code: "QH42AB", Skills: []string{"Go"}}))
	err := r.Create(ctx, &models.InterviewSession{Code: "QH42AB", Skills: []string{"SQL"}})
	assert.ErrorIs(t, err, utils.ErrConflict)

	got, err := r.Get(ctx, "QH42AB")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)
	require.NotNil(t, got.ExpiresAt)
}
