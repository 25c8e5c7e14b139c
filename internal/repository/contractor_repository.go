package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var contractorListSpec = listSpec{
	searchColumns: []string{"name", "trade", "email", "phone"},
	filterColumns: map[string]string{"trade": "trade"},
	sortFields: map[string]bool{
		"name":        true,
		"trade":       true,
		"hourly_rate": true,
		"created_at":  true,
		"updated_at":  true,
	},
	defaultSort: "created_at",
}

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

func (r *ContractorRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Contractor, int64, error) {
	return listScoped[model.Contractor](ctx, r.db, companyID, params, contractorListSpec, nil)
}

func (r *ContractorRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Contractor, error) {
	return findScoped[model.Contractor](ctx, r.db, companyID, id)
}

func (r *ContractorRepository) Exists(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return existsScoped[model.Contractor](ctx, r.db, companyID, id)
}

// FindByIDs returns the contractors of the company among ids.
func (r *ContractorRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]model.Contractor, error) {
	if len(ids) == 0 {
		return []model.Contractor{}, nil
	}
	var contractors []model.Contractor
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Order("name ASC").
		Find(&contractors).Error
	if err != nil {
		return nil, err
	}
	return contractors, nil
}

func (r *ContractorRepository) Create(ctx context.Context, contractor *model.Contractor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(contractor).Error
}

func (r *ContractorRepository) Update(ctx context.Context, contractor *model.Contractor) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(contractor).Error
}

// Delete removes the contractor together with its project assignments.
func (r *ContractorRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM project_contractors WHERE contractor_id = ?`, id).Error; err != nil {
			return err
		}
		return deleteScoped[model.Contractor](ctx, tx, companyID, id)
	})
}

// CountDependents returns how many tasks are still assigned to the contractor.
func (r *ContractorRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	return countWhere[model.Task](ctx, r.db, "contractor_id = ?", id)
}
