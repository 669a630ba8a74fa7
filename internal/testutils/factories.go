package testutils

import (
	"fmt"
	"time"

	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

// StringPtr returns a pointer to s, for the nullable user columns
func StringPtr(s string) *string {
	return &s
}

// UserFactory provides methods to create test User data
type UserFactory struct{}

// NewUserFactory creates a new UserFactory
func NewUserFactory() *UserFactory {
	return &UserFactory{}
}

// Create creates a test User with every profile field set
func (f *UserFactory) Create() *models.User {
	id := uuid.New()
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:   StringPtr("Jane Doe"),
		Email:  StringPtr(fmt.Sprintf("jane.%s@test.com", id.String()[:8])),
		Phone:  StringPtr("+1-555-0100"),
		Role:   StringPtr("Manager"),
		Status: StringPtr(string(models.MemberStatusActive)),
	}
}

// Bare creates a test User with no profile fields at all
func (f *UserFactory) Bare() *models.User {
	return &models.User{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}

// WithName sets a custom name for the user
func (f *UserFactory) WithName(name string) *models.User {
	user := f.Create()
	user.Name = StringPtr(name)
	return user
}

// WithStatus sets a custom status for the user
func (f *UserFactory) WithStatus(status models.MemberStatus) *models.User {
	user := f.Create()
	user.Status = StringPtr(string(status))
	return user
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project owned by ownerID
func (f *ProjectFactory) Create(ownerID uuid.UUID) *models.Project {
	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:       "Launch Campaign",
		Description: "Reminders for the product launch",
		Status:      models.ProjectStatusActive,
		UserID:      ownerID,
	}
}

// WithTitle sets a custom title for the project
func (f *ProjectFactory) WithTitle(ownerID uuid.UUID, title string) *models.Project {
	project := f.Create(ownerID)
	project.Title = title
	return project
}

// WithStatus sets a custom status for the project
func (f *ProjectFactory) WithStatus(ownerID uuid.UUID, status models.ProjectStatus) *models.Project {
	project := f.Create(ownerID)
	project.Status = status
	return project
}

// WithDueDate sets a due date for the project
func (f *ProjectFactory) WithDueDate(ownerID uuid.UUID, due time.Time) *models.Project {
	project := f.Create(ownerID)
	project.DueDate = &due
	return project
}

// ProjectTeamMemberFactory provides methods to create join rows
type ProjectTeamMemberFactory struct{}

// NewProjectTeamMemberFactory creates a new ProjectTeamMemberFactory
func NewProjectTeamMemberFactory() *ProjectTeamMemberFactory {
	return &ProjectTeamMemberFactory{}
}

// Create creates a join row linking userID to projectID
func (f *ProjectTeamMemberFactory) Create(projectID, userID uuid.UUID) *models.ProjectTeamMember {
	return &models.ProjectTeamMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
}

// ScheduledMessageFactory provides methods to create test ScheduledMessage data
type ScheduledMessageFactory struct{}

// NewScheduledMessageFactory creates a new ScheduledMessageFactory
func NewScheduledMessageFactory() *ScheduledMessageFactory {
	return &ScheduledMessageFactory{}
}

// Create creates a pending test message scheduled for tomorrow
func (f *ScheduledMessageFactory) Create() *models.ScheduledMessage {
	return &models.ScheduledMessage{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Title:         "Meeting Reminder",
		Content:       "Don't forget our meeting tomorrow at 10 AM.",
		Recipient:     "+15550001111",
		ScheduledDate: time.Now().Add(24 * time.Hour),
		Status:        models.MessageStatusPending,
	}
}

// WithStatus sets a custom status for the message
func (f *ScheduledMessageFactory) WithStatus(status models.MessageStatus) *models.ScheduledMessage {
	msg := f.Create()
	msg.Status = status
	return msg
}

// ForProject attaches the message to a project and sets its status
func (f *ScheduledMessageFactory) ForProject(projectID uuid.UUID, status models.MessageStatus) *models.ScheduledMessage {
	msg := f.WithStatus(status)
	msg.ProjectID = &projectID
	return msg
}

// ForMember attaches the message to a team member
func (f *ScheduledMessageFactory) ForMember(memberID uuid.UUID) *models.ScheduledMessage {
	msg := f.Create()
	msg.TeamMemberID = &memberID
	return msg
}

// FactorySet provides access to all factories
type FactorySet struct {
	User              *UserFactory
	Project           *ProjectFactory
	ProjectTeamMember *ProjectTeamMemberFactory
	ScheduledMessage  *ScheduledMessageFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		User:              NewUserFactory(),
		Project:           NewProjectFactory(),
		ProjectTeamMember: NewProjectTeamMemberFactory(),
		ScheduledMessage:  NewScheduledMessageFactory(),
	}
}
