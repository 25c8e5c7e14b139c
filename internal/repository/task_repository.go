package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var taskListSpec = listSpec{
	searchColumns: []string{"title", "description"},
	filterColumns: map[string]string{
		"status":        "status",
		"priority":      "priority",
		"contractor_id": "contractor_id",
	},
	sortFields: map[string]bool{
		"title":      true,
		"status":     true,
		"priority":   true,
		"due_date":   true,
		"created_at": true,
		"updated_at": true,
	},
	defaultSort: "created_at",
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListByProject(
	ctx context.Context,
	companyID, projectID uuid.UUID,
	params model.ListParams,
) ([]model.Task, int64, error) {
	byProject := func(query *gorm.DB) *gorm.DB {
		return query.Where("project_id = ?", projectID)
	}
	return listScoped[model.Task](ctx, r.db, companyID, params, taskListSpec, byProject, "Contractor")
}

func (r *TaskRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Task, error) {
	return findScoped[model.Task](ctx, r.db, companyID, id, "Contractor")
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped[model.Task](ctx, r.db, companyID, id)
}
