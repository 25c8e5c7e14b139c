package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

var updateListSpec = listSpec{
	searchColumns: []string{"body", "summary"},
	sortFields:    map[string]bool{"created_at": true},
	defaultSort:   "created_at",
}

type ProjectUpdateRepository struct {
	db *gorm.DB
}

func NewProjectUpdateRepository(db *gorm.DB) *ProjectUpdateRepository {
	return &ProjectUpdateRepository{db: db}
}

func (r *ProjectUpdateRepository) ListByProject(
	ctx context.Context,
	companyID, projectID uuid.UUID,
	params model.ListParams,
) ([]model.ProjectUpdate, int64, error) {
	byProject := func(query *gorm.DB) *gorm.DB {
		return query.Where("project_id = ?", projectID)
	}
	return listScoped[model.ProjectUpdate](ctx, r.db, companyID, params, updateListSpec, byProject)
}

func (r *ProjectUpdateRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.ProjectUpdate, error) {
	return findScoped[model.ProjectUpdate](ctx, r.db, companyID, id)
}

func (r *ProjectUpdateRepository) Create(ctx context.Context, update *model.ProjectUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *ProjectUpdateRepository) SetSummary(ctx context.Context, id uuid.UUID, summary string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.ProjectUpdate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary":       summary,
			"summarized_at": at,
		}).Error
}
