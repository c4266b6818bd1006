package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AtharvaKhot17/QuickHireAI/internal/auth"
	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
	pgrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/postgres"
	"github.com/AtharvaKhot17/QuickHireAI/internal/utils"
)

type AuthResult struct {
	Company   *models.Company `json:"company"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type CompanyService interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Get(ctx context.Context, id string) (*models.Company, error)
}

type companyService struct {
	companies pgrepo.CompanyRepository
	tokens    *auth.TokenIssuer
}

func NewCompanyService(companies pgrepo.CompanyRepository, tokens *auth.TokenIssuer) CompanyService {
	return &companyService{companies: companies, tokens: tokens}
}

func (s *companyService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	const op = "CompanyService.Register"

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name, email, and password are required", nil)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid email", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
	}

	c := &models.Company{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "email is already registered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	return s.issue(op, c)
}

func (s *companyService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "CompanyService.Login"

	if email == "" || password == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email and password are required", nil)
	}

	c, err := s.companies.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load company", err)
	}
	if err := utils.CheckPassword(c.PasswordHash, password); err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid email or password", nil)
	}
	return s.issue(op, c)
}

func (s *companyService) Get(ctx context.Context, id string) (*models.Company, error) {
	const op = "CompanyService.Get"

	c, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, utils.FromRepo(op, err, "company not found", "failed to load company")
	}
	return c, nil
}

func (s *companyService) issue(op string, c *models.Company) (*AuthResult, error) {
	tok, exp, err := s.tokens.Issue(c.ID, auth.RoleCompany)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &AuthResult{Company: c, Token: tok, ExpiresAt: exp}, nil
}
