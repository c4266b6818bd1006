package services

import (
	"context"
	"strings"
	"time"

	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type InterviewInput struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Roles           []string   `json:"roles"`
	Skills          []string   `json:"skills"`
	Difficulty      string     `json:"difficulty"`
	TotalQuestions  int        `json:"numQuestions"`
	DurationMinutes int        `json:"durationMinutes"`
	ScheduledAt     *time.Time `json:"scheduledAt"`
}

var difficulties = map[string]bool{"easy": true, "medium": true, "hard": true}

// InterviewService manages company-defined interviews. Every method checks
// that the interview belongs to companyID.
type InterviewService interface {
	Create(ctx context.Context, companyID string, in InterviewInput) (*models.Interview, error)
	Get(ctx context.Context, companyID, id string) (*models.Interview, error)
	List(ctx context.Context, companyID string) ([]models.Interview, error)
	Update(ctx context.Context, companyID, id string, in InterviewInput) (*models.Interview, error)
	Delete(ctx context.Context, companyID, id string) error
}

type interviewService struct {
	interviews   mongorepo.InterviewRepository
	maxQuestions int
}

func NewInterviewService(interviews mongorepo.InterviewRepository, maxQuestions int) InterviewService {
	if maxQuestions <= 0 {
		maxQuestions = 20
	}
	return &interviewService{interviews: interviews, maxQuestions: maxQuestions}
}

func (s *interviewService) validate(op string, in *InterviewInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Roles = interview.NormalizeSkills(in.Roles)
	in.Skills = interview.NormalizeSkills(in.Skills)
	in.Difficulty = strings.ToLower(strings.TrimSpace(in.Difficulty))

	if in.Name == "" {
		return utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if in.Difficulty == "" {
		in.Difficulty = "medium"
	}
	if !difficulties[in.Difficulty] {
		return utils.E(utils.CodeInvalidArgument, op, "difficulty must be easy, medium or hard", nil)
	}
	if in.DurationMinutes < 0 {
		return utils.E(utils.CodeInvalidArgument, op, "durationMinutes must not be negative", nil)
	}
	if len(in.Skills) == 0 {
		return utils.E(utils.CodeInvalidArgument, op, "at least one skill is required", nil)
	}
	if in.TotalQuestions == 0 {
		in.TotalQuestions = interview.DefaultTotalQuestions
	}
	if in.TotalQuestions < 1 || in.TotalQuestions > s.maxQuestions {
		return utils.E(utils.CodeInvalidArgument, op, "numQuestions is out of range", nil)
	}
	return nil
}

func (in InterviewInput) apply(iv *models.Interview) {
	iv.Name = in.Name
	iv.Description = in.Description
	iv.Roles = in.Roles
	iv.Skills = in.Skills
	iv.Difficulty = in.Difficulty
	iv.TotalQuestions = in.TotalQuestions
	iv.DurationMinutes = in.DurationMinutes
	iv.ScheduledAt = in.ScheduledAt
}

func (s *interviewService) Create(ctx context.Context, companyID string, in InterviewInput) (*models.Interview, error) {
	const op = "InterviewService.Create"

	if companyID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "unauthorized", nil)
	}
	if err := s.validate(op, &in); err != nil {
		return nil, err
	}

	iv := &models.Interview{
		CompanyID: companyID,
	}
	in.apply(iv)
	if err := s.interviews.Create(ctx, iv); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create interview", err)
	}
	return iv, nil
}

func (s *interviewService) Get(ctx context.Context, companyID, id string) (*models.Interview, error) {
	const op = "InterviewService.Get"

	iv, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromRepo(op, err, "interview not found", "failed to load interview")
	}
	if iv.CompanyID != companyID {
		return nil, utils.E(utils.CodeForbidden, op, "interview belongs to another company", nil)
	}
	return iv, nil
}

func (s *interviewService) List(ctx context.Context, companyID string) ([]models.Interview, error) {
	const op = "InterviewService.List"

	out, err := s.interviews.ListByCompany(ctx, companyID, 0)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list interviews", err)
	}
	return out, nil
}

func (s *interviewService) Update(ctx context.Context, companyID, id string, in InterviewInput) (*models.Interview, error) {
	const op = "InterviewService.Update"

	iv, err := s.Get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(op, &in); err != nil {
		return nil, err
	}

	in.apply(iv)
	if err := s.interviews.Update(ctx, iv); err != nil {
		return nil, utils.FromRepo(op, err, "interview not found", "failed to update interview")
	}
	return iv, nil
}

func (s *interviewService) Delete(ctx context.Context, companyID, id string) error {
	const op = "InterviewService.Delete"

	if _, err := s.Get(ctx, companyID, id); err != nil {
		return err
	}
	if err := s.interviews.Delete(ctx, id); err != nil {
		return utils.FromRepo(op, err, "interview not found", "failed to delete interview")
	}
	return nil
}
