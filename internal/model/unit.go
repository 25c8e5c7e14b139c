package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit is a unit of measure used on quotation lines (m², m³, hour, item...).
type Unit struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_units_company_symbol" json:"company_id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Symbol    string    `gorm:"size:16;not null;uniqueIndex:uq_units_company_symbol" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Unit) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
