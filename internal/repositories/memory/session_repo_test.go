package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

func TestSessionRepo_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepo(time.Hour)

	_, err := r.Get(ctx, "ABC123")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, r.Put(ctx, &models.InterviewSession{Code: "ABC123", Skills: []string{"Go"}}))

	got, err := r.Get(ctx, "ABC123")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Skills)
	require.NotNil(t, got.ExpiresAt)

	require.NoError(t, r.Delete(ctx, "ABC123"))
	_, err = r.Get(ctx, "ABC123")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestSessionRepo_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepo(0)
	require.NoError(t, r.Put(ctx, &models.InterviewSession{Code: "X", Skills: []string{"Go"}}))

	got, err := r.Get(ctx, "X")
	require.NoError(t, err)
	got.Skills[0] = "changed"
	got.CurrentQuestionIndex = 3

	again, err := r.Get(ctx, "X")
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Skills[0])
	assert.Equal(t, 0, again.CurrentQuestionIndex)
}

func TestSessionRepo_Expiry(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepo(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Put(ctx, &models.InterviewSession{Code: "OLD"}))
	now = now.Add(30 * time.Second)
	require.NoError(t, r.Put(ctx, &models.InterviewSession{Code: "NEW"}))

	now = now.Add(45 * time.Second)
	_, err := r.Get(ctx, "OLD")
	assert.ErrorIs(t, err, utils.ErrNotFound)
	_, err = r.Get(ctx, "NEW")
	assert.NoError(t, err)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
}

func TestSessionRepo_CreateConflictsUntilExpired(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepo(time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	require.NoError(t, r.Create(ctx, &models.InterviewSession{Code: "DUP", Skills: []string{"Go"}}))
	err := r.Create(ctx, &models.InterviewSession{Code: "DUP", Skills: []string{"SQL"}})
	assert.ErrorIs(t, err, utils.ErrConflict)

	now = now.Add(2 * time.Minute)
	require.NoError(t, r.Create(ctx, &models.InterviewSession{Code: "DUP", Skills: []string{"SQL"}}))
	got, err := r.Get(ctx, "DUP")
	require.NoError(t, err)
	assert.Equal(t, []string{"SQL"}, got.Skills)
}

func TestSessionRepo_ZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	r := NewSessionRepo(0)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	s := &models.InterviewSession{Code: "KEEP", Skills: []string{"Go"}}
	require.NoError(t, r.Create(ctx, s))
	assert.Nil(t, s.ExpiresAt)

	now = now.Add(24 * 365 * time.Hour)
	got, err := r.Get(ctx, "KEEP")
	require.NoError(t, err)
	assert.Nil(t, got.ExpiresAt)
	assert.ErrorIs(t, r.Create(ctx, &models.InterviewSession{Code: "KEEP"}), utils.ErrConflict)
	assert.Equal(t, 0, r.Sweep())
}
