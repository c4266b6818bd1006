package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type CandidateRepository interface {
	// Insert returns inserted=false when the interview already has a
	// candidate with the same email, and utils.ErrConflict when the code is
	// taken.
	Insert(ctx context.Context, c *models.Candidate) (inserted bool, err error)
	GetByCode(ctx context.Context, code string) (*models.Candidate, error)
	ListByInterview(ctx context.Context, interviewID string) ([]models.Candidate, error)
	MarkCompleted(ctx context.Context, code string, at time.Time) error
}

type candidateRepo struct {
	db *gorm.DB
}

func NewCandidateRepo(db *gorm.DB) CandidateRepository {
	return &candidateRepo{db: db}
}

func (r *candidateRepo) Insert(ctx context.Context, c *models.Candidate) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "interview_id"}, {Name: "email"}},
			DoNothing: true,
		}).
		Create(c)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return false, utils.ErrConflict
	}
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *candidateRepo) GetByCode(ctx context.Context, code string) (*models.Candidate, error) {
	var c models.Candidate
	err := r.db.WithContext(ctx).Where("code = ?", code).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &c, err
}

func (r *candidateRepo) ListByInterview(ctx context.Context, interviewID string) ([]models.Candidate, error) {
	rows := []models.Candidate{}
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *candidateRepo) MarkCompleted(ctx context.Context, code string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("code = ?", code).
		Updates(map[string]any{
			"status":       models.CandidateCompleted,
			"completed_at": at.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
