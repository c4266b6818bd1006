package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/AtharvaKhot17/QuickHireAI/internal/importer"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
	pgrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/postgres"
	"github.com/AtharvaKhot17/QuickHireAI/internal/storage"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

const codeAttempts = 5

type ImportSummary struct {
	Imported   []models.Candidate  `json:"imported"`
	Duplicates int                 `json:"duplicates"`
	Errors     []importer.RowError `json:"errors"`
	ArchiveURI string              `json:"archiveUri,omitempty"`
}

type CandidateService interface {
	Import(ctx context.Context, companyID, interviewID, filename string, data []byte) (*ImportSummary, error)
	List(ctx context.Context, companyID, interviewID string) ([]models.Candidate, error)
	GetByCode(ctx context.Context, code string) (*models.Candidate, error)
	MarkCompleted(ctx context.Context, code string) error
	InvitationResolver
}

type candidateService struct {
	candidates pgrepo.CandidateRepository
	interviews mongorepo.InterviewRepository
	owner      InterviewService
	uploader   storage.Uploader // optional
	log        *logrus.Logger
	newCode    func() string
}

func NewCandidateService(
	candidates pgrepo.CandidateRepository,
	interviews mongorepo.InterviewRepository,
	owner InterviewService,
	uploader storage.Uploader,
	log *logrus.Logger,
) CandidateService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &candidateService{
		candidates: candidates,
		interviews: interviews,
		owner:      owner,
		uploader:   uploader,
		log:        log,
		newCode:    utils.NewCandidateCode,
	}
}

func (s *candidateService) Import(ctx context.Context, companyID, interviewID, filename string, data []byte) (*ImportSummary, error) {
	const op = "CandidateService.Import"

	iv, err := s.owner.Get(ctx, companyID, interviewID)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "file is empty", nil)
	}

	var (
		parsed  *importer.Result
		archive string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := importer.Parse(filename, bytes.NewReader(data))
		if err != nil {
			return utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		parsed = res
		return nil
	})
	if s.uploader != nil {
		g.Go(func() error {
			object := storage.CandidateSheetObject(interviewID, filename, time.Now())
			uri, err := s.uploader.Upload(gctx, object, "application/octet-stream", bytes.NewReader(data))
			if err != nil {
				// archive is best effort
				s.log.WithError(err).WithField("interview_id", interviewID).Warn("failed to archive candidate sheet")
				return nil
			}
			archive = uri
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &ImportSummary{
		Imported:   []models.Candidate{},
		Duplicates: parsed.Duplicates,
		Errors:     append([]importer.RowError{}, parsed.Errors...),
		ArchiveURI: archive,
	}
	for _, row := range parsed.Rows {
		c, inserted, err := s.insert(ctx, iv, row)
		if err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to save candidates", err)
		}
		if !inserted {
			out.Duplicates++
			continue
		}
		out.Imported = append(out.Imported, *c)
	}

	s.log.WithFields(logrus.Fields{
		"interview_id": interviewID,
		"imported":     len(out.Imported),
		"duplicates":   out.Duplicates,
		"rejected":     len(out.Errors),
	}).Info("candidates imported")
	return out, nil
}

// insert retries with a fresh code when the generated one is already taken.
func (s *candidateService) insert(ctx context.Context, iv *models.Interview, row importer.Row) (*models.Candidate, bool, error) {
	c := &models.Candidate{
		CompanyID:   iv.CompanyID,
		InterviewID: iv.ID.Hex(),
		Name:        row.Name,
		Email:       row.Email,
		Role:        row.Role,
		Skills:      row.Skills,
		Status:      models.CandidateInvited,
	}
	for range codeAttempts {
		c.ID = uuid.NewString()
		c.Code = s.newCode()
		c.CreatedAt = time.Now().UTC()

		inserted, err := s.candidates.Insert(ctx, c)
		if errors.Is(err, utils.ErrConflict) {
			continue
		}
		return c, inserted, err
	}
	return nil, false, errors.New("could not allocate a unique candidate code")
}

func (s *candidateService) List(ctx context.Context, companyID, interviewID string) ([]models.Candidate, error) {
	const op = "CandidateService.List"

	if _, err := s.owner.Get(ctx, companyID, interviewID); err != nil {
		return nil, err
	}
	out, err := s.candidates.ListByInterview(ctx, interviewID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list candidates", err)
	}
	return out, nil
}

func (s *candidateService) GetByCode(ctx context.Context, code string) (*models.Candidate, error) {
	const op = "CandidateService.GetByCode"

	c, err := s.candidates.GetByCode(ctx, utils.NormalizeCode(code))
	if err != nil {
		return nil, utils.FromRepo(op, err, "candidate not found", "failed to load candidate")
	}
	return c, nil
}

func (s *candidateService) MarkCompleted(ctx context.Context, code string) error {
	const op = "CandidateService.MarkCompleted"

	if err := s.candidates.MarkCompleted(ctx, code, time.Now()); err != nil {
		return utils.FromRepo(op, err, "candidate not found", "failed to update candidate")
	}
	return nil
}

// Resolve returns the raw utils.ErrNotFound for codes that were never issued,
// which the session service treats as a self-chosen practice code. Issued
// codes are uppercase, so a code typed in lowercase still matches.
func (s *candidateService) Resolve(ctx context.Context, code string) (*Invitation, error) {
	c, err := s.candidates.GetByCode(ctx, code)
	if upper := strings.ToUpper(code); errors.Is(err, utils.ErrNotFound) && upper != code {
		c, err = s.candidates.GetByCode(ctx, upper)
	}
	if err != nil {
		return nil, err
	}

	inv := &Invitation{
		Code:        c.Code,
		InterviewID: c.InterviewID,
		CandidateID: c.ID,
		Skills:      c.Skills,
	}
	iv, err := s.interviews.GetByID(ctx, c.InterviewID)
	switch {
	case err == nil:
		if len(inv.Skills) == 0 {
			inv.Skills = iv.Skills
		}
		inv.TotalQuestions = iv.TotalQuestions
	case errors.Is(err, utils.ErrNotFound):
		// interview was deleted after the import; keep the candidate's own skills
	default:
		return nil, err
	}
	return inv, nil
}
