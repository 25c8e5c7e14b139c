package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type SiteService struct {
	repo    *repository.SiteRepository
	clients *repository.ClientRepository
}

type SiteInput struct {
	ClientID uuid.UUID
	Name     string
	Address  string
	City     string
	Postcode string
	Notes    string
}

func NewSiteService(repo *repository.SiteRepository, clients *repository.ClientRepository) *SiteService {
	return &SiteService{repo: repo, clients: clients}
}

func (s *SiteService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Site], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Site]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *SiteService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Site, error) {
	site, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return site, nil
}

func (s *SiteService) Create(ctx context.Context, principal model.Principal, input SiteInput) (*model.Site, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	site := &model.Site{CompanyID: principal.CompanyID}
	applySiteInput(site, input)
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, site.ID)
}

func (s *SiteService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input SiteInput) (*model.Site, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	site, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if site.ClientID != input.ClientID {
		quotations, err := s.repo.CountQuotationsForOtherClient(ctx, id, input.ClientID)
		if err != nil {
			return nil, err
		}
		if quotations > 0 {
			return nil, fmt.Errorf("%w: site is quoted for its current client", ErrConflict)
		}
	}
	applySiteInput(site, input)
	site.Client = nil
	if err := s.repo.Update(ctx, site); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *SiteService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
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
		return fmt.Errorf("%w: site still has projects", ErrConflict)
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func (s *SiteService) validate(ctx context.Context, companyID uuid.UUID, input *SiteInput) error {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.ClientID == uuid.Nil {
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	ok, err := s.clients.Exists(ctx, companyID, input.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: client does not exist", ErrInvalidInput)
	}
	return nil
}

func applySiteInput(site *model.Site, input SiteInput) {
	site.ClientID = input.ClientID
	site.Name = input.Name
	site.Address = input.Address
	site.City = strings.TrimSpace(input.City)
	site.Postcode = strings.ToUpper(strings.TrimSpace(input.Postcode))
	site.Notes = input.Notes
}
