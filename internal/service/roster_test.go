package service_test

import (
	"testing"

	"message-scheduler-backend/internal/database/models"
	"message-scheduler-backend/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewTeamMember_AppliesDefaults(t *testing.T) {
	id := uuid.New()
	member := service.NewTeamMember(models.User{BaseModel: models.BaseModel{ID: id}})

	assert.Equal(t, service.UnknownName, member.Name)
	assert.Equal(t, "", member.Email)
	assert.Equal(t, service.DefaultPhone, member.Phone)
	assert.Equal(t, service.DefaultRole, member.Role)
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed="+id.String(), member.Avatar)
	assert.Equal(t, models.MemberStatusActive, member.Status)
	assert.Zero(t, member.ProjectCount)
}

func TestAvatarPlaceholder_DependsOnlyOnID(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	assert.Equal(t, service.AvatarPlaceholder(a), service.AvatarPlaceholder(a))
	assert.NotEqual(t, service.AvatarPlaceholder(a), service.AvatarPlaceholder(b))
	assert.Equal(t, service.AvatarPlaceholder(a), service.NewTeamMember(models.User{BaseModel: models.BaseModel{ID: a}}).Avatar)
}

func TestNewTeamMember_NameFallsBackToFullName(t *testing.T) {
	member := service.NewTeamMember(models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      strPtr(""),
		FullName:  strPtr("Ada Lovelace"),
	})
	assert.Equal(t, "Ada Lovelace", member.Name)
}

func TestNewTeamMember_KeepsStoredFields(t *testing.T) {
	user := models.User{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Name:      strPtr("Grace"),
		FullName:  strPtr("Grace Hopper"),
		Email:     strPtr("grace@example.com"),
		Phone:     strPtr("+44 20 7946 0000"),
		Role:      strPtr("Admin"),
		AvatarURL: strPtr("https://example.com/grace.png"),
		Status:    strPtr("inactive"),
	}
	member := service.NewTeamMember(user)

	assert.Equal(t, "Grace", member.Name)
	assert.Equal(t, "grace@example.com", member.Email)
	assert.Equal(t, "+44 20 7946 0000", member.Phone)
	assert.Equal(t, "Admin", member.Role)
	assert.Equal(t, "https://example.com/grace.png", member.Avatar)
	assert.Equal(t, models.MemberStatusInactive, member.Status)
}

func TestBuildRoster_PreservesOrder(t *testing.T) {
	a, b, c := newUser("a"), newUser("b"), newUser("c")
	roster := service.BuildRoster([]models.User{c, a, b})

	assert.Len(t, roster, 3)
	assert.Equal(t, c.ID, roster[0].ID)
	assert.Equal(t, a.ID, roster[1].ID)
	assert.Equal(t, b.ID, roster[2].ID)
	assert.Empty(t, service.BuildRoster(nil))
}
