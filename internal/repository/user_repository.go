package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/model"
)

var userListSpec = listSpec{
	searchColumns: []string{"email", "name"},
	filterColumns: map[string]string{"role": "role"},
	sortFields: map[string]bool{
		"email":      true,
		"name":       true,
		"role":       true,
		"created_at": true,
	},
	defaultSort: "created_at",
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Get(ctx context.Context, companyID, id uuid.UUID) (*model.User, error) {
	return findScoped[model.User](ctx, r.db, companyID, id)
}

func (r *UserRepository) List(ctx context.Context, companyID uuid.UUID, params model.ListParams) ([]model.User, int64, error) {
	return listScoped[model.User](ctx, r.db, companyID, params, userListSpec, nil)
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	count, err := countWhere[model.User](ctx, r.db, "email = ?", strings.ToLower(strings.TrimSpace(email)))
	return count > 0, err
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return deleteScoped[model.User](ctx, r.db, companyID, id)
}
