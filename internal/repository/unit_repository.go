package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

var unitListSpec = listSpec{
	searchColumns: []string{"name", "symbol"},
	sortFields: map[string]bool{
		"name":       true,
		"symbol":     true,
		"created_at": true,
	},
	defaultSort: "name",
}

type UnitRepository struct {
	db *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

func (r *UnitRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Unit, int64, error) {
	return listScoped[model.Unit](ctx, r.db, companyID, params, unitListSpec, nil)
}

func (r *UnitRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Unit, error) {
	return findScoped[model.Unit](ctx, r.db, companyID, id)
}

// CountExisting returns how many of ids belong to the company.
func (r *UnitRepository) CountExisting(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return countWhere[model.Unit](ctx, r.db, "company_id = ? AND id IN ?", companyID, ids)
}

// SymbolTaken reports whether another unit of the company already uses symbol.
func (r *UnitRepository) SymbolTaken(ctx context.Context, companyID uuid.UUID, symbol string, exceptID uuid.UUID) (bool, error) {
	count, err := countWhere[model.Unit](ctx, r.db, "company_id = ? AND symbol = ? AND id <> ?", companyID, symbol, exceptID)
	return count > 0, err
}

func (r *UnitRepository) Create(ctx context.Context, unit *model.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *UnitRepository) Update(ctx context.Context, unit *model.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *UnitRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped[model.Unit](ctx, r.db, companyID, id)
}

// CountDependents returns how many quotation lines use the unit.
func (r *UnitRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	return countWhere[model.QuotationItem](ctx, r.db, "unit_id = ?", id)
}
