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

type TaskService struct {
	repo        *repository.TaskRepository
	projects    *repository.ProjectRepository
	contractors *repository.ContractorRepository
}

type TaskInput struct {
	ContractorID *uuid.UUID
	Title        string
	Description  string
	Status       model.TaskStatus
	Priority     model.TaskPriority
	DueDate      *time.Time
}

func NewTaskService(
	repo *repository.TaskRepository,
	projects *repository.ProjectRepository,
	contractors *repository.ContractorRepository,
) *TaskService {
	return &TaskService{repo: repo, projects: projects, contractors: contractors}
}

func (s *TaskService) ListByProject(ctx context.Context, principal model.Principal, projectID uuid.UUID, params model.ListParams) (model.Page[model.Task], error) {
	if err := s.ensureProject(ctx, principal.CompanyID, projectID); err != nil {
		return model.Page[model.Task]{}, err
	}
	items, total, err := s.repo.ListByProject(ctx, principal.CompanyID, projectID, params)
	if err != nil {
		return model.Page[model.Task]{}, err
	}
	return model.NewPage(items, total, params), nil
}

func (s *TaskService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, principal model.Principal, projectID uuid.UUID, input TaskInput) (*model.Task, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.ensureProject(ctx, principal.CompanyID, projectID); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	task := &model.Task{CompanyID: principal.CompanyID, ProjectID: projectID}
	applyTaskInput(task, input)
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, task.ID)
}

func (s *TaskService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input TaskInput) (*model.Task, error) {
	if err := requireWriter(principal); err != nil {
		return nil, err
	}
	if err := s.validate(ctx, principal.CompanyID, &input); err != nil {
		return nil, err
	}

	task, err := s.repo.Get(ctx, principal.CompanyID, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	applyTaskInput(task, input)
	task.Contractor = nil
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.Get(ctx, principal, id)
}

func (s *TaskService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := requireWriter(principal); err != nil {
		return err
	}
	return mapNotFound(s.repo.Delete(ctx, principal.CompanyID, id))
}

func (s *TaskService) ensureProject(ctx context.Context, companyID, projectID uuid.UUID) error {
	ok, err := s.projects.Exists(ctx, companyID, projectID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *TaskService) validate(ctx context.Context, companyID uuid.UUID, input *TaskInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = model.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, input.Status)
	}
	if input.Priority == "" {
		input.Priority = model.TaskPriorityMedium
	}
	if !input.Priority.Valid() {
		return fmt.Errorf("%w: unknown task priority %q", ErrInvalidInput, input.Priority)
	}
	if input.ContractorID != nil && *input.ContractorID == uuid.Nil {
		input.ContractorID = nil
	}
	if input.ContractorID != nil {
		ok, err := s.contractors.Exists(ctx, companyID, *input.ContractorID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: contractor does not exist", ErrInvalidInput)
		}
	}
	return nil
}

func applyTaskInput(task *model.Task, input TaskInput) {
	task.ContractorID = input.ContractorID
	task.Title = input.Title
	task.Description = input.Description
	task.Status = input.Status
	task.Priority = input.Priority
	task.DueDate = dateOnlyPtr(input.DueDate)
}
