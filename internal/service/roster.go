package service

import (
	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
)

// Display defaults for user rows with missing fields
const (
	DefaultPhone = "+1 (555) 123-4567"
	DefaultRole  = "User"
	UnknownName  = "Unknown"

	avatarPlaceholderBase = "https://api.dicebear.com/7.x/avataaars/svg?seed="
)

// TeamMember is a user row with every display field filled in
type TeamMember struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	Role         string              `json:"role"`
	Avatar       string              `json:"avatar"`
	Status       models.MemberStatus `json:"status"`
	ProjectCount int                 `json:"project_count"`
}

// AvatarPlaceholder returns the generated avatar URL for a member id
func AvatarPlaceholder(id uuid.UUID) string {
	return avatarPlaceholderBase + id.String()
}

// NewTeamMember applies the display defaults to a single user row
func NewTeamMember(user models.User) TeamMember {
	return TeamMember{
		ID:     user.ID,
		Name:   firstNonEmpty(UnknownName, user.Name, user.FullName),
		Email:  firstNonEmpty("", user.Email),
		Phone:  firstNonEmpty(DefaultPhone, user.Phone),
		Role:   firstNonEmpty(DefaultRole, user.Role),
		Avatar: firstNonEmpty(AvatarPlaceholder(user.ID), user.AvatarURL),
		Status: models.MemberStatus(firstNonEmpty(string(models.MemberStatusActive), user.Status)),
	}
}

// BuildRoster converts user rows to team members, keeping their order.
// Project counts start at zero and are filled in by ApplyProjectCounts.
func BuildRoster(users []models.User) []TeamMember {
	roster := make([]TeamMember, 0, len(users))
	for _, u := range users {
		roster = append(roster, NewTeamMember(u))
	}
	return roster
}

func firstNonEmpty(fallback string, values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return fallback
}

func findMember(roster []TeamMember, id uuid.UUID) (TeamMember, bool) {
	for _, m := range roster {
		if m.ID == id {
			return m, true
		}
	}
	return TeamMember{}, false
}
