package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

type ClientService struct {
	repo *repository.ClientRepository
}

type ClientInput struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	ContactPerson string
	Notes         string
}

func (in ClientInput) normalize() (ClientInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	if in.Name == "" {
		return in, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	return in, nil
}

func NewClientService(repo *repository.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) List(ctx context.Context, principal model.Principal, params model.ListParams) (model.Page[model.Client], error) {
	items, total, err := s.repo.List(ctx, principal.CompanyID, params)
	if err != nil {
		return model.Page[model.Client]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *ClientService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Client, error) {
	client, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return client, nil
}

func (s *ClientService) Create(ctx context.Context, principal model.Principal, input ClientInput) (*model.Client, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	client := &model.Client{CompanyID: principal.CompanyID}
	applyClientInput(client, input)
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input ClientInput) (*model.Client, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	input, err := input.normalize()
	if err != nil {
		return nil, err
	}

	client, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	applyClientInput(client, input)
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
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
		return fmt.Errorf("%w: client still has sites or quotations", ErrConflict)
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func applyClientInput(client *model.Client, input ClientInput) {
	client.Name = input.Name
	client.Email = input.Email
	client.Phone = input.Phone
	client.Address = input.Address
	client.ContactPerson = input.ContactPerson
	client.Notes = input.Notes
}
