package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a messaging project owned by a user
type Project struct {
	BaseModel
	Title          string        `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description    string        `json:"description" gorm:"type:text"`
	Status         ProjectStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft'"`
	MessageCount   int           `json:"message_count" gorm:"not null;default:0"`
	ScheduledCount int           `json:"scheduled_count" gorm:"not null;default:0"`
	UserID         uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	DueDate        *time.Time    `json:"due_date,omitempty"`

	// Relationships
	TeamMembers []ProjectTeamMember `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
