package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type fakeInterviewRepo struct {
	byID map[string]*models.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{byID: map[string]*models.Interview{}}
}

func (r *fakeInterviewRepo) Create(_ context.Context, iv *models.Interview) error {
	iv.ID = primitive.NewObjectID()
	cp := *iv
	r.byID[iv.ID.Hex()] = &cp
	return nil
}

func (r *fakeInterviewRepo) GetByID(_ context.Context, id string) (*models.Interview, error) {
	iv, ok := r.byID[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *iv
	return &cp, nil
}

func (r *fakeInterviewRepo) ListByCompany(_ context.Context, companyID string, _ int64) ([]models.Interview, error) {
	out := []models.Interview{}
	for _, iv := range r.byID {
		if iv.CompanyID == companyID {
			out = append(out, *iv)
		}
	}
	return out, nil
}

func (r *fakeInterviewRepo) Update(_ context.Context, iv *models.Interview) error {
	if _, ok := r.byID[iv.ID.Hex()]; !ok {
		return utils.ErrNotFound
	}
	cp := *iv
	r.byID[iv.ID.Hex()] = &cp
	return nil
}

func (r *fakeInterviewRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestInterviewService_CreateDefaults(t *testing.T) {
	svc := NewInterviewService(newFakeInterviewRepo(), 10)

	iv, err := svc.Create(context.Background(), "company-1", InterviewInput{
		Name:   "  Backend  ",
		Skills: []string{" Go ", "", "SQL"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Backend", iv.Name)
	assert.Equal(t, []string{"Go", "SQL"}, iv.Skills)
	assert.Equal(t, "medium", iv.Difficulty)
	assert.Equal(t, interview.DefaultTotalQuestions, iv.TotalQuestions)
	assert.Equal(t, "company-1", iv.CompanyID)
}

func TestInterviewService_Validation(t *testing.T) {
	svc := NewInterviewService(newFakeInterviewRepo(), 10)
	ctx := context.Background()

	cases := map[string]InterviewInput{
		"no name":          {Skills: []string{"Go"}},
		"no skills":        {Name: "x"},
		"bad difficulty":   {Name: "x", Skills: []string{"Go"}, Difficulty: "extreme"},
		"too many":         {Name: "x", Skills: []string{"Go"}, TotalQuestions: 11},
		"negative minutes": {Name: "x", Skills: []string{"Go"}, DurationMinutes: -1},
	}
	for name, in := range cases {
		_, err := svc.Create(ctx, "company-1", in)
		assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument), name)
	}

	_, err := svc.Create(ctx, "", InterviewInput{Name: "x", Skills: []string{"Go"}})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestInterviewService_Ownership(t *testing.T) {
	repo := newFakeInterviewRepo()
	svc := NewInterviewService(repo, 10)
	ctx := context.Background()

	iv, err := svc.Create(ctx, "company-1", InterviewInput{Name: "x", Skills: []string{"Go"}, Difficulty: "Hard"})
	require.NoError(t, err)
	id := iv.ID.Hex()

	_, err = svc.Get(ctx, "company-2", id)
	assert.True(t, utils.IsCode(err, utils.CodeForbidden))
	assert.True(t, utils.IsCode(svc.Delete(ctx, "company-2", id), utils.CodeForbidden))

	updated, err := svc.Update(ctx, "company-1", id, InterviewInput{Name: "y", Skills: []string{"SQL"}, TotalQuestions: 3})
	require.NoError(t, err)
	assert.Equal(t, "y", updated.Name)
	assert.Equal(t, 3, updated.TotalQuestions)

	list, err := svc.List(ctx, "company-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "company-1", id))
	_, err = svc.Get(ctx, "company-1", id)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
