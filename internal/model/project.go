package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanned    ProjectStatus = "PLANNED"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusCancelled  ProjectStatus = "CANCELLED"
)

var ProjectStatuses = []ProjectStatus{
	ProjectStatusPlanned,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusCancelled,
}

func (s ProjectStatus) Valid() bool {
	for _, status := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	SiteID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"site_id"`
	Site        *Site           `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Status      ProjectStatus   `gorm:"size:32;not null" json:"status"`
	StartDate   *time.Time      `gorm:"type:date" json:"start_date"`
	EndDate     *time.Time      `gorm:"type:date" json:"end_date"`
	Budget      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"budget"`
	Contractors []Contractor    `gorm:"many2many:project_contractors;" json:"contractors"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectUpdate is a free-text progress note with an optional generated summary.
type ProjectUpdate struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	ProjectID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	AuthorID     *uuid.UUID `gorm:"type:uuid" json:"author_id"`
	Body         string     `gorm:"type:text;not null" json:"body"`
	Summary      string     `gorm:"type:text" json:"summary"`
	SummarizedAt *time.Time `json:"summarized_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (u *ProjectUpdate) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
