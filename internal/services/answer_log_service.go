package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
	pgrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/postgres"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

// AnswerLogService keeps a durable per-answer transcript, optionally with a
// transcript embedding for similarity search.
type AnswerLogService interface {
	Record(ctx context.Context, s *models.InterviewSession, a models.Answer) error
	ListByCode(ctx context.Context, companyID, code string) ([]models.AnswerLog, error)
}

type answerLogService struct {
	logs       pgrepo.AnswerLogRepository
	embedder   llm.Embedder // optional
	candidates CandidateService
	owner      InterviewService
}

func NewAnswerLogService(logs pgrepo.AnswerLogRepository, embedder llm.Embedder, candidates CandidateService, owner InterviewService) AnswerLogService {
	return &answerLogService{logs: logs, embedder: embedder, candidates: candidates, owner: owner}
}

func (s *answerLogService) Record(ctx context.Context, sess *models.InterviewSession, a models.Answer) error {
	const op = "AnswerLogService.Record"

	evalJSON, err := json.Marshal(a.Evaluation)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode evaluation", err)
	}

	row := &models.AnswerLog{
		ID:            uuid.NewString(),
		Code:          sess.Code,
		InterviewID:   sess.InterviewID,
		QuestionIndex: a.QuestionIndex,
		Question:      a.Question,
		Transcript:    a.Transcript,
		Score:         a.Evaluation.Score,
		Skipped:       a.Skipped,
		Evaluation:    datatypes.JSON(evalJSON),
		CreatedAt:     time.Now().UTC(),
	}

	if s.embedder != nil && !a.Skipped {
		vec, err := s.embedder.Embed(llm.WithPurpose(ctx, "embedding"), a.Transcript)
		if err == nil && len(vec) > 0 {
			v := pgvector.NewVector(vec)
			row.Embedding = &v
		}
	}

	if err := s.logs.Insert(ctx, row); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to insert answer log", err)
	}
	return nil
}

func (s *answerLogService) ListByCode(ctx context.Context, companyID, code string) ([]models.AnswerLog, error) {
	const op = "AnswerLogService.ListByCode"

	c, err := s.candidates.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if _, err := s.owner.Get(ctx, companyID, c.InterviewID); err != nil {
		return nil, err
	}

	rows, err := s.logs.ListByCode(ctx, c.Code, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list answer logs", err)
	}
	return rows, nil
}
