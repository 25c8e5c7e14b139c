package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nurpe/siteops-admin/internal/config"
	"github.com/nurpe/siteops-admin/internal/model"
	"github.com/nurpe/siteops-admin/internal/testutil"
)

func TestSeedDemo(t *testing.T) {
	database := testutil.NewDB(t)
	demo := config.DemoConfig{Seed: true, Company: "Demo Co", Email: "Admin@Demo.local", Password: "demo-pass"}

	require.NoError(t, SeedDemo(context.Background(), database, demo, zerolog.Nop()))
	require.NoError(t, SeedDemo(context.Background(), database, demo, zerolog.Nop()))

	var users []model.User
	require.NoError(t, database.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@demo.local", users[0].Email)
	assert.Equal(t, model.UserRoleAdmin, users[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("demo-pass")))

	var units int64
	require.NoError(t, database.Model(&model.Unit{}).Where("company_id = ?", users[0].CompanyID).Count(&units).Error)
	assert.Equal(t, int64(len(defaultUnits)), units)
}
