package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type ProjectService struct {
	repo        *repository.ProjectRepository
	sites       *repository.SiteRepository
	contractors *repository.ContractorRepository
}

type ProjectInput struct {
	SiteID      uuid.UUID
	Name        string
	Description string
	Status      model.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      decimal.Decimal
}

func NewProjectService(
	repo *repository.ProjectRepository,
	sites *repository.SiteRepository,
	contractors *repository.ContractorRepository,
) *ProjectService {
	return &ProjectService{repo: repo, sites: sites, contractors: contractors}
}

func (s *ProjectService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Project], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Project]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *ProjectService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Project, error) {
	project, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return project, nil
}

func (s *ProjectService) Create(ctx context.Context, principal model.Principal, input ProjectInput) (*model.Project, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	project := &model.Project{CompanyID: principal.CompanyID}
	applyProjectInput(project, input)
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, project.ID)
}

func (s *ProjectService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ProjectInput) (*model.Project, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	project, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	applyProjectInput(project, input)
	project.Site = nil
	project.Contractors = nil
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *ProjectService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

// AssignContractors replaces the set of contractors working on the project.
func (s *ProjectService) AssignContractors(ctx context.Context, principal model.Principal, id uuid.UUID, contractorIDs []uuid.UUID) (*model.Project, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if _, err := s.repo.Get(ctx, principal.CompanyID, id); err != nil {
		return nil, mapNotFound(err)
	}

	unique := dedupeIDs(contractorIDs)
	found, err := s.contractors.FindByIDs(ctx, principal.CompanyID, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, fmt.Errorf("%w: unknown contractor in assignment", ErrInvalidInput)
	}

	if err := s.repo.ReplaceContractors(ctx, id, unique); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *ProjectService) validate(ctx context.Context, companyID uuid.UUID, input *ProjectInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = model.ProjectStatusPlanned
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, input.Status)
	}
	if input.Budget.IsNegative() {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidInput)
	}
	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidInput)
	}
	if input.SiteID == uuid.Nil {
		return fmt.Errorf("%w: site_id is required", ErrInvalidInput)
	}
	if _, err := s.sites.Get(ctx, companyID, input.SiteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: site does not exist", ErrInvalidInput)
		}
		return err
	}
	return nil
}

func applyProjectInput(project *model.Project, input ProjectInput) {
	project.SiteID = input.SiteID
	project.Name = input.Name
	project.Description = input.Description
	project.Status = input.Status
	project.StartDate = dateOnlyPtr(input.StartDate)
	project.EndDate = dateOnlyPtr(input.EndDate)
	project.Budget = input.Budget.Round(2)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	value := dateOnly(*t)
	return &value
}
