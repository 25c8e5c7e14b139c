package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nurpe/siteops-admin/internal/model"
)

// NewDB returns an in-memory sqlite database migrated with every model.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Client{},
		&model.Site{},
		&model.Contractor{},
		&model.Project{},
		&model.ProjectUpdate{},
		&model.Task{},
		&model.Unit{},
		&model.Quotation{},
		&model.QuotationItem{},
	))
	return database
}

// NewCompany inserts a tenant and returns its id.
func NewCompany(t *testing.T, database *gorm.DB, name string) model.Company {
	t.Helper()

	company := model.Company{Name: name}
	require.NoError(t, database.Create(&company).Error)
	return company
}
