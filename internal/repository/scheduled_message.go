package repository

import (
	"context"
	"time"

	"message-scheduler-backend/internal/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const insertBatchSize = 100

// MessageFilter narrows a message listing. Zero values mean "no filter".
// From is inclusive, To is exclusive.
type MessageFilter struct {
	Status       models.MessageStatus
	TeamMemberID *uuid.UUID
	ProjectID    *uuid.UUID
	From         *time.Time
	To           *time.Time
}

// ProjectMessageStat is the number of messages of one status on one project
type ProjectMessageStat struct {
	ProjectID uuid.UUID
	Status    models.MessageStatus
	Count     int64
}

// ScheduledMessageRepository handles database operations for scheduled messages
type ScheduledMessageRepository struct {
	db *gorm.DB
}

// NewScheduledMessageRepository creates a new scheduled message repository
func NewScheduledMessageRepository(db *gorm.DB) *ScheduledMessageRepository {
	return &ScheduledMessageRepository{db: db}
}

// List retrieves messages matching the filter ordered by scheduled date
func (r *ScheduledMessageRepository) List(ctx context.Context, filter MessageFilter) ([]models.ScheduledMessage, error) {
	var msgs []models.ScheduledMessage

	query := r.db.WithContext(ctx).Model(&models.ScheduledMessage{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.TeamMemberID != nil {
		query = query.Where("team_member_id = ?", *filter.TeamMemberID)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.From != nil {
		query = query.Where("scheduled_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_date < ?", *filter.To)
	}

	if err := query.Order("scheduled_date ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// GetByID retrieves a message by ID
func (r *ScheduledMessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ScheduledMessage, error) {
	var msg models.ScheduledMessage
	err := r.db.WithContext(ctx).First(&msg, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Create creates a new scheduled message
func (r *ScheduledMessageRepository) Create(ctx context.Context, msg *models.ScheduledMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// UpdateStatus overwrites the status of a message
func (r *ScheduledMessageRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.MessageStatus) error {
	res := r.db.WithContext(ctx).Model(&models.ScheduledMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// InsertIfEmpty inserts msgs only when the table holds no messages. The table
// lock makes the emptiness check and the insert one step, so concurrent
// callers cannot both seed. Reports whether the batch was inserted.
func (r *ScheduledMessageRepository) InsertIfEmpty(ctx context.Context, msgs []models.ScheduledMessage) (bool, error) {
	inserted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("LOCK TABLE scheduled_messages IN EXCLUSIVE MODE").Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ScheduledMessage{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 || len(msgs) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(&msgs, insertBatchSize).Error; err != nil {
			return err
		}
		inserted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

// ProjectStats counts messages per project and status. Messages with no
// project are skipped.
func (r *ScheduledMessageRepository) ProjectStats(ctx context.Context) ([]ProjectMessageStat, error) {
	var stats []ProjectMessageStat
	err := r.db.WithContext(ctx).Model(&models.ScheduledMessage{}).
		Select("project_id, status, COUNT(*) AS count").
		Where("project_id IS NOT NULL").
		Group("project_id, status").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
