package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) Counts(ctx context.Context, companyID uuid.UUID) (*model.Dashboard, error) {
	var row struct {
		Clients     int64
		Sites       int64
		Contractors int64
		OpenTasks   int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM clients WHERE company_id = ?) AS clients,
			(SELECT COUNT(*) FROM sites WHERE company_id = ?) AS sites,
			(SELECT COUNT(*) FROM contractors WHERE company_id = ?) AS contractors,
			(SELECT COUNT(*) FROM tasks WHERE company_id = ? AND status <> ?) AS open_tasks
	`, companyID, companyID, companyID, companyID, model.TaskStatusDone).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	projects, err := r.statusCounts(ctx, "projects", companyID)
	if err != nil {
		return nil, err
	}
	quotations, err := r.statusCounts(ctx, "quotations", companyID)
	if err != nil {
		return nil, err
	}

	accepted, err := r.quotationValue(ctx, companyID, model.QuotationStatusAccepted)
	if err != nil {
		return nil, err
	}
	outstanding, err := r.quotationValue(ctx, companyID, model.QuotationStatusSent)
	if err != nil {
		return nil, err
	}

	return &model.Dashboard{
		Clients:          row.Clients,
		Sites:            row.Sites,
		Contractors:      row.Contractors,
		OpenTasks:        row.OpenTasks,
		Projects:         projects,
		Quotations:       quotations,
		AcceptedValue:    accepted,
		OutstandingValue: outstanding,
	}, nil
}

// statusCounts groups a tenant table by its status column. table is one of the
// fixed names passed by Counts.
func (r *DashboardRepository) statusCounts(ctx context.Context, table string, companyID uuid.UUID) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	if err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count
		FROM `+table+`
		WHERE company_id = ?
		GROUP BY status
		ORDER BY status ASC
	`, companyID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.StatusCount{}
	}
	return rows, nil
}

func (r *DashboardRepository) quotationValue(ctx context.Context, companyID uuid.UUID, status model.QuotationStatus) (decimal.Decimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT SUM(total) AS total FROM quotations WHERE company_id = ? AND status = ?
	`, companyID, status).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	if !row.Total.Valid {
		return decimal.Zero, nil
	}
	return row.Total.Decimal, nil
}
