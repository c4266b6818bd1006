package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

type AnswerLogRepository interface {
	Insert(ctx context.Context, log *models.AnswerLog) error
	ListByCode(ctx context.Context, code string, limit int) ([]models.AnswerLog, error)
}

type answerLogRepo struct {
	db *gorm.DB
}

func NewAnswerLogRepo(db *gorm.DB) AnswerLogRepository {
	return &answerLogRepo{db: db}
}

func (r *answerLogRepo) Insert(ctx context.Context, log *models.AnswerLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *answerLogRepo) ListByCode(ctx context.Context, code string, limit int) ([]models.AnswerLog, error) {
	if limit <= 0 {
		limit = 100
	}

	rows := []models.AnswerLog{}
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		Order("question_index ASC, created_at ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
