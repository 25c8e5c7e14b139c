package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"company_id"`
	ProjectID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"project_id"`
	ContractorID *uuid.UUID   `gorm:"type:uuid;index" json:"contractor_id"`
	Contractor   *Contractor  `gorm:"foreignKey:ContractorID" json:"contractor,omitempty"`
	Title        string       `gorm:"size:255;not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Status       TaskStatus   `gorm:"size:32;not null" json:"status"`
	Priority     TaskPriority `gorm:"size:16;not null" json:"priority"`
	DueDate      *time.Time   `gorm:"type:date" json:"due_date"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
