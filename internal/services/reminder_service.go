package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	model "project-hub.com/project-hub/pkg/models"
)

const reminderPrefixLength = 30

type ReminderService struct {
	repo *repository.ReminderRepository
	log  zerolog.Logger
}

func NewReminderService(repo *repository.ReminderRepository, log zerolog.Logger) *ReminderService {
	return &ReminderService{
		repo: repo,
		log:  log,
	}
}

func (s *ReminderService) Send(ctx context.Context, toUserID, fromUserID, projectID, message string) (*model.Reminder, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.Validation("message is required")
	}

	reminder := &model.Reminder{
		UserID:    toUserID,
		ProjectID: projectID,
		SenderID:  fromUserID,
		Message:   message,
	}
	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (s *ReminderService) Delete(ctx context.Context, userID, reminderID string) error {
	return s.repo.Delete(ctx, userID, reminderID)
}

func (s *ReminderService) List(ctx context.Context, userID string) ([]model.Reminder, error) {
	return s.repo.ListByUser(ctx, userID)
}

// notify sends a lifecycle reminder. The triggering change is already committed, so a
// failed reminder is logged rather than returned.
func (s *ReminderService) notify(ctx context.Context, toUserID, fromUserID, projectID, message string) {
	if toUserID == "" || toUserID == fromUserID {
		return
	}

	if _, err := s.Send(ctx, toUserID, fromUserID, projectID, message); err != nil {
		s.log.Warn().Err(err).
			Str("to", toUserID).
			Str("project_id", projectID).
			Msg("failed to deliver reminder")
	}
}

func describeTask(verb, description string) string {
	prefix := strings.TrimSpace(description)
	if utf8.RuneCountInString(prefix) > reminderPrefixLength {
		prefix = string([]rune(prefix)[:reminderPrefixLength]) + "..."
	}
	return verb + ": " + prefix
}
