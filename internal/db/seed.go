package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nurpe/siteops-admin/internal/config"
	"github.com/nurpe/siteops-admin/internal/model"
)

var defaultUnits = []model.Unit{
	{Name: "Square metre", Symbol: "m2"},
	{Name: "Cubic metre", Symbol: "m3"},
	{Name: "Linear metre", Symbol: "m"},
	{Name: "Hour", Symbol: "hr"},
	{Name: "Day", Symbol: "day"},
	{Name: "Item", Symbol: "item"},
}

// SeedDemo creates the demo tenant with an admin account and default units.
// It is a no-op when the demo account already exists.
func SeedDemo(ctx context.Context, database *gorm.DB, demo config.DemoConfig, log zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(demo.Email))

	var existing model.User
	err := database.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demo.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	return database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := model.Company{Name: demo.Company}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		user := model.User{
			CompanyID:    company.ID,
			Email:        email,
			Name:         "Demo Admin",
			PasswordHash: string(hash),
			Role:         model.UserRoleAdmin,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		units := make([]model.Unit, len(defaultUnits))
		for i, unit := range defaultUnits {
			unit.CompanyID = company.ID
			units[i] = unit
		}
		if err := tx.Create(&units).Error; err != nil {
			return err
		}

		log.Info().Str("company_id", company.ID.String()).Str("email", email).Msg("demo tenant seeded")
		return nil
	})
}
