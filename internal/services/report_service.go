package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

// ReportService turns completed sessions into stored reports for the
// company dashboard.
type ReportService interface {
	Build(ctx context.Context, code string) (*models.Report, error)
	ListByInterview(ctx context.Context, companyID, interviewID string) ([]models.Report, error)
}

type CandidateCompleter interface {
	MarkCompleted(ctx context.Context, code string) error
}

type reportService struct {
	sessions   SessionStore
	final      FinalSummarizer
	reports    mongorepo.ReportRepository
	owner      InterviewService   // optional
	candidates CandidateCompleter // optional
	log        *logrus.Logger
}

func NewReportService(
	sessions SessionStore,
	final FinalSummarizer,
	reports mongorepo.ReportRepository,
	owner InterviewService,
	candidates CandidateCompleter,
	log *logrus.Logger,
) ReportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &reportService{
		sessions:   sessions,
		final:      final,
		reports:    reports,
		owner:      owner,
		candidates: candidates,
		log:        log,
	}
}

func (s *reportService) Build(ctx context.Context, code string) (*models.Report, error) {
	const op = "ReportService.Build"

	sess, err := s.sessions.Get(ctx, code)
	if err != nil {
		return nil, utils.FromRepo(op, err, "interview session not found", "failed to load session")
	}
	if !sess.IsCompleted() {
		return nil, utils.E(utils.CodeConflict, op, "interview is not completed yet", nil)
	}

	rep := &models.Report{
		Code:         sess.Code,
		InterviewID:  sess.InterviewID,
		CandidateID:  sess.CandidateID,
		Skills:       sess.Skills,
		CurrentScore: sess.CurrentScore,
		Evaluation:   s.final.Summarize(ctx, sess.Answers),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.reports.Upsert(ctx, rep); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to save report", err)
	}

	if sess.CandidateID != "" && s.candidates != nil {
		if err := s.candidates.MarkCompleted(ctx, sess.Code); err != nil {
			s.log.WithError(err).WithField("code", sess.Code).Warn("failed to mark candidate completed")
		}
	}

	s.log.WithFields(logrus.Fields{
		"code":          sess.Code,
		"interview_id":  sess.InterviewID,
		"overall_score": rep.Evaluation.OverallScore,
		"source":        rep.Evaluation.Source,
	}).Info("report stored")
	return rep, nil
}

func (s *reportService) ListByInterview(ctx context.Context, companyID, interviewID string) ([]models.Report, error) {
	const op = "ReportService.ListByInterview"

	if s.owner != nil {
		if _, err := s.owner.Get(ctx, companyID, interviewID); err != nil {
			return nil, err
		}
	}
	out, err := s.reports.ListByInterview(ctx, interviewID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list reports", err)
	}
	return out, nil
}
