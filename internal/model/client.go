package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255" json:"email"`
	Phone         string    `gorm:"size:64" json:"phone"`
	Address       string    `gorm:"type:text" json:"address"`
	ContactPerson string    `gorm:"size:255" json:"contact_person"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (c *Client) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
