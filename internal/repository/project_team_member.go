package repository

import (
	"context"

	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTeamMemberRepository handles the project/member join relation
type ProjectTeamMemberRepository struct {
	db *gorm.DB
}

// NewProjectTeamMemberRepository creates a new project team member repository
func NewProjectTeamMemberRepository(db *gorm.DB) *ProjectTeamMemberRepository {
	return &ProjectTeamMemberRepository{db: db}
}

// GetAll retrieves every join row
func (r *ProjectTeamMemberRepository) GetAll(ctx context.Context) ([]models.ProjectTeamMember, error) {
	var rows []models.ProjectTeamMember
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Exists checks whether a user is already on a project
func (r *ProjectTeamMemberRepository) Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectTeamMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// Create adds a user to a project
func (r *ProjectTeamMemberRepository) Create(ctx context.Context, member *models.ProjectTeamMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// Delete removes a user from a project and returns the id of the removed row
func (r *ProjectTeamMemberRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) (uuid.UUID, error) {
	var row models.ProjectTeamMember
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&row).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.ProjectTeamMember{}, "id = ?", row.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}
