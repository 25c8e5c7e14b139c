package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type ContractorService struct {
	repo *repository.ContractorRepository
}

type ContractorInput struct {
	Name       string
	Trade      string
	Email      string
	Phone      string
	HourlyRate decimal.Decimal
	Notes      string
}

func NewContractorService(repo *repository.ContractorRepository) *ContractorService {
	return &ContractorService{repo: repo}
}

func (s *ContractorService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Contractor], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Contractor]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *ContractorService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Contractor, error) {
	contractor, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return contractor, nil
}

func (s *ContractorService) Create(ctx context.Context, principal model.Principal, input ContractorInput) (*model.Contractor, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := validateContractor(&input); err != nil {
		return nil, err
	}

	contractor := &model.Contractor{CompanyID: principal.CompanyID}
	applyContractorInput(contractor, input)
	if err := s.repo.Create(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *ContractorService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ContractorInput) (*model.Contractor, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := validateContractor(&input); err != nil {
		return nil, err
	}

	contractor, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	applyContractorInput(contractor, input)
	if err := s.repo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *ContractorService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, principal.CompanyID, id); err != nil {
		return mapNotFound(err)
	}

	dependents, err := s.repo.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if dependents > 0 {
		return fmt.Errorf("%w: contractor still has assigned tasks", ErrConflict)
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func validateContractor(input *ContractorInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.HourlyRate.IsNegative() {
		return fmt.Errorf("%w: hourly_rate must not be negative", ErrInvalidInput)
	}
	return nil
}

func applyContractorInput(contractor *model.Contractor, input ContractorInput) {
	contractor.Name = input.Name
	contractor.Trade = strings.TrimSpace(input.Trade)
	contractor.Email = strings.ToLower(strings.TrimSpace(input.Email))
	contractor.Phone = strings.TrimSpace(input.Phone)
	contractor.HourlyRate = input.HourlyRate.Round(2)
	contractor.Notes = input.Notes
}
