package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var siteListSpec = listSpec{
	searchColumns: []string{"name", "address", "city", "postcode"},
	filterColumns: map[string]string{"client_id": "client_id"},
	sortFields: map[string]bool{
		"name":       true,
		"city":       true,
		"created_at": true,
		"updated_at": true,
	},
	defaultSort: "created_at",
}

type SiteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Site, int64, error) {
	return listScoped[model.Site](ctx, r.db, companyID, params, siteListSpec, nil, "Client")
}

func (r *SiteRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Site, error) {
	return findScoped[model.Site](ctx, r.db, companyID, id, "Client")
}

func (r *SiteRepository) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(site).Error
}

func (r *SiteRepository) Update(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(site).Error
}

func (r *SiteRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped[model.Site](ctx, r.db, companyID, id)
}

// CountDependents returns how many projects still reference the site.
func (r *SiteRepository) CountDependents(ctx context.Context, id uuid.UUID) (int64, error) {
	return countWhere[model.Project](ctx, r.db, "site_id = ?", id)
}

// CountQuotationsForOtherClient returns how many quotations reference the site
// while belonging to a client other than clientID.
func (r *SiteRepository) CountQuotationsForOtherClient(ctx context.Context, id, clientID uuid.UUID) (int64, error) {
	return countWhere[model.Quotation](ctx, r.db, "site_id = ? AND client_id <> ?", id, clientID)
}
