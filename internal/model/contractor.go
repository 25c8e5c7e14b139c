package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Contractor struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Trade      string          `gorm:"size:128" json:"trade"`
	Email      string          `gorm:"size:255" json:"email"`
	Phone      string          `gorm:"size:64" json:"phone"`
	HourlyRate decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"hourly_rate"`
	Notes      string          `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (c *Contractor) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
