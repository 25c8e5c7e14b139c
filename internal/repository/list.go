package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

// listSpec describes how an entity can be searched, filtered and sorted.
// Column names come from these whitelists only, never from request input.
type listSpec struct {
	searchColumns []string
	filterColumns map[string]string
	sortFields    map[string]bool
	defaultSort   string
}

func validateSortOrder(order string) string {
	if strings.EqualFold(strings.TrimSpace(order), "asc") {
		return "ASC"
	}
	return "DESC"
}

func validateSortField(field string, allowed map[string]bool, defaultField string) string {
	field = strings.TrimSpace(field)
	if field != "" && allowed[field] {
		return field
	}
	return defaultField
}

func applySearch(query *gorm.DB, search string, columns []string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}

	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		conditions[i] = fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", column)
		args[i] = pattern
	}
	return query.Where("("+strings.Join(conditions, " OR ")+")", args...)
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

func applyFilters(query *gorm.DB, filters map[string]string, columns map[string]string) *gorm.DB {
	for key, value := range filters {
		column, ok := columns[key]
		if !ok || value == "" {
			continue
		}
		query = query.Where(column+" = ?", value)
	}
	return query
}

func orderClause(params model.ListParams, columns listSpec) string {
	field := validateSortField(params.Sort, columns.sortFields, columns.defaultSort)
	return fmt.Sprintf("%s %s, id ASC", field, validateSortOrder(params.Order))
}

// listScoped runs a tenant-scoped paginated query for T. base may add
// entity-specific conditions; preloads are applied to the page query only.
func listScoped[T any](
	ctx context.Context,
	db *gorm.DB,
	companyID uuid.UUID,
	params model.ListParams,
	columns listSpec,
	base func(*gorm.DB) *gorm.DB,
	preloads ...string,
) ([]T, int64, error) {
	query := db.WithContext(ctx).Model(new(T)).Where("company_id = ?", companyID)
	if base != nil {
		query = base(query)
	}
	query = applyFilters(query, params.Filters, columns.filterColumns)
	query = applySearch(query, params.Search, columns.searchColumns)
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pageQuery := query.Order(orderClause(params, columns))
	if params.PageSize > 0 {
		pageQuery = pageQuery.Limit(params.PageSize).Offset(params.Offset())
	}
	for _, preload := range preloads {
		pageQuery = pageQuery.Preload(preload)
	}

	var items []T
	if err := pageQuery.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func findScoped[T any](ctx context.Context, db *gorm.DB, companyID, id uuid.UUID, preloads ...string) (*T, error) {
	query := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id)
	for _, preload := range preloads {
		query = query.Preload(preload)
	}

	var item T
	if err := query.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func existsScoped[T any](ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).
		Where("company_id = ? AND id = ?", companyID, id).
		Count(&count).Error
	return count > 0, err
}

func deleteScoped[T any](ctx context.Context, db *gorm.DB, companyID, id uuid.UUID) error {
	result := db.WithContext(ctx).Where("company_id = ? AND id = ?", companyID, id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func countWhere[T any](ctx context.Context, db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(new(T)).Where(query, args...).Count(&count).Error
	return count, err
}
