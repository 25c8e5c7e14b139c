package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var clientListSpec = listSpec{
	searchColumns: []string{"name", "email", "phone", "contact_person"},
	sortFields: map[string]bool{
		"name":       true,
		"email":      true,
		"created_at": true,
		"updated_at": true,
	},
	defaultSort: "created_at",
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Client, int64, error) {
	return listScoped[model.Client](ctx, r.db, companyID, params, clientListSpec, nil)
}

func (r *ClientRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Client, error) {
	return findScoped[model.Client](ctx, r.db, companyID, id)
}

func (r *ClientRepository) Exists(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	return existsScoped[model.Client](ctx, r.db, companyID, id)
}

func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(client).Error
}

func (r *ClientRepository) Update(ctx context.Context, client *model.Client) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(client).Error
}

func (r *ClientRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped[model.Client](ctx, r.db, companyID, id)
}

// CountDependents returns how many sites and quotations still reference the client.
func (r *ClientRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	sites, err := countWhere[model.Site](ctx, r.db, "client_id = ?", id)
	if err != nil {
		return 0, err
	}
	quotations, err := countWhere[model.Quotation](ctx, r.db, "client_id = ?", id)
	if err != nil {
		return 0, err
	}
	return sites + quotations, nil
}
