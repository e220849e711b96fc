package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "project-hub.com/project-hub/internal/errors"
	model "project-hub.com/project-hub/pkg/models"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// CreateReminder appends to the recipient's inbox. The insert only happens when the
// recipient exists, in the same statement.
func (r *ReminderRepository) CreateReminder(ctx context.Context, reminder *model.Reminder) error {
	reminder.ID = uuid.NewString()
	reminder.CreatedAt = time.Now().UTC()

	res := r.db.WithContext(ctx).Exec(
		`INSERT INTO reminders (id, user_id, project_id, sender_id, message, created_at)
		 SELECT ?, id, ?, ?, ?, ? FROM users WHERE id = ?`,
		reminder.ID, reminder.ProjectID, reminder.SenderID, reminder.Message, reminder.CreatedAt, reminder.UserID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListByUser expands the project (name, deadline) and the sender summary.
func (r *ReminderRepository) ListByUser(ctx context.Context, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	err := r.db.WithContext(ctx).
		Preload("Project", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "deadline", "status")
		}).
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select(model.UserSummaryColumns)
		}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&reminders).Error
	return reminders, err
}

func (r *ReminderRepository) Delete(ctx context.Context, userID, reminderID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reminderID, userID).
		Delete(&model.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrReminderNotFound
	}
	return nil
}
