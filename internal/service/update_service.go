package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/repository"
)

const maxSummaryInput = 20000

type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type UpdateService struct {
	repo       *repository.ProjectUpdateRepository
	projects   *repository.ProjectRepository
	summarizer Summarizer
	now        func() time.Time
}

type CreateUpdateInput struct {
	Body      string
	Summarize bool
}

// NewUpdateService wires project updates; summarizer may be nil when no model is configured.
func NewUpdateService(repo *repository.ProjectUpdateRepository, projects *repository.ProjectRepository, summarizer Summarizer) *UpdateService {
	return &UpdateService{repo: repo, projects: projects, summarizer: summarizer, now: time.Now}
}

func (s *UpdateService) List(ctx context.Context, principal model.Principal, projectID uuid.UUID, params model.ListParams) (model.Page[model.ProjectUpdate], error) {
	if err := s.ensureProject(ctx, principal.CompanyID, projectID); err != nil {
		return model.Page[model.ProjectUpdate]{}, err
	}
	items, total, err := s.repo.ListByProject(ctx, principal.CompanyID, projectID, params)
	if err != nil {
		return model.Page[model.ProjectUpdate]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *UpdateService) Create(ctx context.Context, principal model.Principal, projectID uuid.UUID, input CreateUpdateInput) (*model.ProjectUpdate, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	body, err := normalizeSummaryText(input.Body)
	if err != nil {
		return nil, err
	}
	if input.Summarize && s.summarizer == nil {
		return nil, ErrSummarizerUnavailable
	}
	if err := s.ensureProject(ctx, principal.CompanyID, projectID); err != nil {
		return nil, err
	}

	authorID := principal.UserID
	update := &model.ProjectUpdate{
		CompanyID: principal.CompanyID,
		ProjectID: projectID,
		AuthorID:  &authorID,
		Body:      body,
	}
	if input.Summarize {
		summary, err := s.summarizer.Summarize(ctx, body)
		if err != nil {
			return nil, fmt.Errorf("summarize update: %w", err)
		}
		at := s.now().UTC()
		update.Summary = summary
		update.SummarizedAt = &at
	}

	if err := s.repo.Create(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// Summarize (re)generates the summary of an existing update.
func (s *UpdateService) Summarize(ctx context.Context, principal model.Principal, projectID, updateID uuid.UUID) (*model.ProjectUpdate, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if s.summarizer == nil {
		return nil, ErrSummarizerUnavailable
	}

	update, err := s.repo.Get(ctx, principal.CompanyID, updateID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if update.ProjectID != projectID {
		return nil, ErrNotFound
	}
	if err := s.summarizeUpdate(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

// SummarizeText summarizes arbitrary text without storing it.
func (s *UpdateService) SummarizeText(ctx context.Context, principal model.Principal, text string) (string, error) {
	if err := requireWriter(principal); err != nil {
		return "", err
	}
	if s.summarizer == nil {
		return "", ErrSummarizerUnavailable
	}
	text, err := normalizeSummaryText(text)
	if err != nil {
		return "", err
	}
	return s.summarizer.Summarize(ctx, text)
}

func (s *UpdateService) summarizeUpdate(ctx context.Context, update *model.ProjectUpdate) error {
	summary, err := s.summarizer.Summarize(ctx, update.Body)
	if err != nil {
		return fmt.Errorf("summarize update: %w", err)
	}
	at := s.now().UTC()
	if err := s.repo.SetSummary(ctx, update.ID, summary, at); err != nil {
		return err
	}
	update.Summary = summary
	update.SummarizedAt = &at
	return nil
}

func (s *UpdateService) ensureProject(ctx context.Context, companyID, projectID uuid.UUID) error {
	ok, err := s.projects.Exists(ctx, companyID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func normalizeSummaryText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if len(text) > maxSummaryInput {
		return "", fmt.Errorf("%w: text must be at most %d bytes", ErrInvalidInput, maxSummaryInput)
	}
	return text, nil
}
