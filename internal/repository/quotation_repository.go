package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nurpe/siteops-admin/internal/model"
)

var quotationListSpec = listSpec{
	searchColumns: []string{"number", "title"},
	filterColumns: map[string]string{
		"client_id":  "client_id",
		"site_id":    "site_id",
		"project_id": "project_id",
		"status":     "status",
	},
	sortFields: map[string]bool{
		"number":      true,
		"title":       true,
		"status":      true,
		"issue_date":  true,
		"valid_until": true,
		"total":       true,
		"created_at":  true,
		"updated_at":  true,
	},
	defaultSort: "created_at",
}

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func (r *QuotationRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.Quotation, int64, error) {
	return listScoped[model.Quotation](ctx, r.db, companyID, params, quotationListSpec, nil, "Client")
}

func (r *QuotationRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.Quotation, error) {
	var quotation model.Quotation
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Site").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Items.Unit").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&quotation).Error
	if err != nil {
		return nil, err
	}
	return &quotation, nil
}

// Create inserts the quotation header and its items in one transaction. A
// quotation without a number is numbered for its issue month while the company
// row is locked, so concurrent creates never draw the same number.
func (r *QuotationRepository) Create(ctx context.Context, quotation *model.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if quotation.Number == "" {
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				Where("id = ?", quotation.CompanyID).
				First(&model.Company{}).Error
			if err != nil {
				return err
			}
			number, err := nextNumber(tx, quotation.CompanyID, quotation.IssueDate)
			if err != nil {
				return err
			}
			quotation.Number = number
		}
		if err := tx.Omit(clause.Associations).Create(quotation).Error; err != nil {
			return err
		}
		return insertItems(tx, quotation)
	})
}

// Update saves the header and replaces all items.
func (r *QuotationRepository) Update(ctx context.Context, quotation *model.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(quotation).Error; err != nil {
			return err
		}
		if err := tx.Where("quotation_id = ?", quotation.ID).Delete(&model.QuotationItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, quotation)
	})
}

func insertItems(tx *gorm.DB, quotation *model.Quotation) error {
	if len(quotation.Items) == 0 {
		return nil
	}
	for i := range quotation.Items {
		quotation.Items[i].ID = uuid.Nil
		quotation.Items[i].QuotationID = quotation.ID
		quotation.Items[i].Position = i + 1
	}
	return tx.Omit(clause.Associations).Create(&quotation.Items).Error
}

func (r *QuotationRepository) UpdateStatus(ctx context.Context, companyID, id uuid.UUID, status model.QuotationStatus) error {
	result := r.db.WithContext(ctx).Model(&model.Quotation{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuotationRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := existsScoped[model.Quotation](ctx, tx, companyID, id)
		if err != nil {
			return err
		}
		if !ok {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Quotation{}).Error
	})
}

// NextNumber returns the next free number of the form Q-YYYYMM-NNNN for the company.
func (r *QuotationRepository) NextNumber(ctx context.Context, companyID uuid.UUID, at time.Time) (string, error) {
	return nextNumber(r.db.WithContext(ctx), companyID, at)
}

func nextNumber(db *gorm.DB, companyID uuid.UUID, at time.Time) (string, error) {
	prefix := fmt.Sprintf("Q-%s-", at.Format("200601"))

	// Sequences grow past four digits, so longer numbers sort first.
	var last model.Quotation
	err := db.
		Select("number").
		Where("company_id = ? AND number LIKE ?", companyID, prefix+"%").
		Order("LENGTH(number) DESC, number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	seq := 1
	if last.Number != "" {
		n, convErr := strconv.Atoi(strings.TrimPrefix(last.Number, prefix))
		if convErr != nil {
			return "", fmt.Errorf("unexpected quotation number %q: %w", last.Number, convErr)
		}
		seq = n + 1
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// ExpireBefore marks open quotations whose validity ended before day as expired,
// across all companies.
func (r *QuotationRepository) ExpireBefore(ctx context.Context, day time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Quotation{}).
		Where("status IN ? AND valid_until < ?", []model.QuotationStatus{
			model.QuotationStatusDraft,
			model.QuotationStatusSent,
		}, day).
		Updates(map[string]interface{}{
			"status":     model.QuotationStatusExpired,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
