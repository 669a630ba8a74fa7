package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledMessage is a message queued for a future date. TeamMemberID and
// ProjectID are weak references: nil means "unknown", and deleting the
// referenced row sets them to nil.
type ScheduledMessage struct {
	BaseModel
	Title         string        `json:"title" gorm:"not null;size:200"`
	Content       string        `json:"content" gorm:"type:text;not null"`
	Recipient     string        `json:"recipient" gorm:"not null;size:50"`
	ScheduledDate time.Time     `json:"scheduled_date" gorm:"not null;index"`
	Status        MessageStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	TeamMemberID  *uuid.UUID    `json:"team_member_id,omitempty" gorm:"type:uuid;index"`
	ProjectID     *uuid.UUID    `json:"project_id,omitempty" gorm:"type:uuid;index"`

	TeamMember *User    `json:"-" gorm:"foreignKey:TeamMemberID;constraint:OnDelete:SET NULL"`
	Project    *Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for ScheduledMessage
func (ScheduledMessage) TableName() string {
	return "scheduled_messages"
}
