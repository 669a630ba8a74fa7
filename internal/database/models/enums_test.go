package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectStatusIsValid(t *testing.T) {
	assert.True(t, ProjectStatusActive.IsValid())
	assert.True(t, ProjectStatusCompleted.IsValid())
	assert.True(t, ProjectStatusDraft.IsValid())
	assert.False(t, ProjectStatus("archived").IsValid())
	assert.False(t, ProjectStatus("").IsValid())
}

func TestMessageStatusIsValid(t *testing.T) {
	assert.True(t, MessageStatusPending.IsValid())
	assert.True(t, MessageStatusSent.IsValid())
	assert.True(t, MessageStatusFailed.IsValid())
	assert.False(t, MessageStatus("delivered").IsValid())
}

func TestMemberStatusIsValid(t *testing.T) {
	assert.True(t, MemberStatusActive.IsValid())
	assert.True(t, MemberStatusInactive.IsValid())
	assert.False(t, MemberStatus("away").IsValid())
}
