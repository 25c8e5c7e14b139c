package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var projectListSpec = listSpec{
	searchColumns: []string{"name", "description"},
	filterColumns: map[string]string{
		"site_id": "site_id",
		"status":  "status",
	},
	sortFields: map[string]bool{
		"name":       true,
		"status":     true,
		"start_date": true,
		"end_date":   true,
		"budget":     true,
		"created_at": true,
		"updated_at": true,
	},
	defaultSort: "created_at",
}

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Project, int64, error) {
	return listScoped[model.Project](ctx, r.db, companyID, params, projectListSpec, nil, "Site", "Contractors")
}

func (r *ProjectRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Project, error) {
	return findScoped[model.Project](ctx, r.db, companyID, id, "Site", "Site.Client", "Contractors")
}

func (r *ProjectRepository) Exists(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return existsScoped[model.Project](ctx, r.db, companyID, id)
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(project).Error
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(project).Error
}

// Delete removes the project with its tasks, updates and contractor assignments.
// Quotations that referenced the project are kept and detached.
func (r *ProjectRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := existsScoped[model.Project](ctx, tx, companyID, id)
		if err != nil {
			return err
		}
		if !ok {
			return gorm.ErrRecordNotFound
		}

		statements := []string{
			`DELETE FROM tasks WHERE project_id = ?`,
			`DELETE FROM project_updates WHERE project_id = ?`,
			`DELETE FROM project_contractors WHERE project_id = ?`,
			`UPDATE quotations SET project_id = NULL WHERE project_id = ?`,
			`DELETE FROM projects WHERE id = ?`,
		}
		for _, stmt := range statements {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceContractors sets the project's contractor assignments to exactly contractorIDs.
func (r *ProjectRepository) ReplaceContractors(ctx context.Context, projectID uuid.UUID, contractorIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM project_contractors WHERE project_id = ?`, projectID).Error; err != nil {
			return err
		}
		for _, contractorID := range contractorIDs {
			if err := tx.Exec(`
				INSERT INTO project_contractors (project_id, contractor_id)
				VALUES (?, ?)
			`, projectID, contractorID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
