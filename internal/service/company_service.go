package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

const minPasswordLength = 8

var validate = validator.New()

type CompanyService struct {
	companies *repository.CompanyRepository
	users     *repository.UserRepository
}

type CompanyInput struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	TaxNumber string
}

type UserInput struct {
	Email    string
	Name     string
	Password string
	Role     model.UserRole
}

func NewCompanyService(companies *repository.CompanyRepository, users *repository.UserRepository) *CompanyService {
	return &CompanyService{companies: companies, users: users}
}

func (s *CompanyService) Get(ctx context.Context, principal model.Principal) (*model.Company, error) {
	company, err := s.companies.Get(ctx, principal.CompanyID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, principal model.Principal, input CompanyInput) (*model.Company, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	company, err := s.companies.Get(ctx, principal.CompanyID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	company.Name = input.Name
	company.Email = strings.ToLower(strings.TrimSpace(input.Email))
	company.Phone = strings.TrimSpace(input.Phone)
	company.Address = input.Address
	company.TaxNumber = strings.TrimSpace(input.TaxNumber)
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) ListUsers(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.User], error) {
	items, total, err := s.users.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.User]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *CompanyService) CreateUser(ctx context.Context, principal model.Principal, input UserInput) (*model.User, error) {
	if err := requireAdmin(principal); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if input.Role == "" {
		input.Role = model.UserRoleViewer
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, input.Role)
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		CompanyID:    principal.CompanyID,
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hash),
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *CompanyService) DeleteUser(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireAdmin(principal); err != nil {
		return err
	}
	if id == principal.UserID {
		return fmt.Errorf("%w: cannot delete your own account", ErrInvalidInput)
	}
	return mapNotFound(s.users.Delete(ctx, principal.CompanyID, id))
}
