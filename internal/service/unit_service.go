package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type UnitService struct {
	repo *repository.UnitRepository
}

type UnitInput struct {
	Name   string
	Symbol string
}

func NewUnitService(repo *repository.UnitRepository) *UnitService {
	return &UnitService{repo: repo}
}

func (s *UnitService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Unit], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Unit]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *UnitService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Unit, error) {
	unit, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return unit, nil
}

func (s *UnitService) Create(ctx context.Context, principal model.Principal, input UnitInput) (*model.Unit, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, uuid.Nil, &input); err != nil {
		return nil, err
	}

	unit := &model.Unit{CompanyID: principal.CompanyID, Name: input.Name, Symbol: input.Symbol}
	if err := s.repo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UnitInput) (*model.Unit, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	unit, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if err := s.validate(ctx, principal.CompanyID, id, &input); err != nil {
		return nil, err
	}

	unit.Name = input.Name
	unit.Symbol = input.Symbol
	if err := s.repo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *UnitService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
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
		return fmt.Errorf("%w: unit is used by quotation items", ErrConflict)
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func (s *UnitService) validate(ctx context.Context, companyID, id uuid.UUID, input *UnitInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Symbol = strings.TrimSpace(input.Symbol)
	if input.Name == "" || input.Symbol == "" {
		return fmt.Errorf("%w: name and symbol are required", ErrInvalidInput)
	}

	taken, err := s.repo.SymbolTaken(ctx, companyID, input.Symbol, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: unit symbol %q already exists", ErrConflict, input.Symbol)
	}
	return nil
}
