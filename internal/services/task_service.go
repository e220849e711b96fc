package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	model "project-hub.com/project-hub/pkg/models"
)

type TaskInput struct {
	Description string
	Deadline    *time.Time
	Urgent      bool
}

type TaskService struct {
	repo      *repository.TaskRepository
	members   *repository.MemberRepository
	reminders *ReminderService
	log       zerolog.Logger
}

func NewTaskService(
	repo *repository.TaskRepository,
	members *repository.MemberRepository,
	reminders *ReminderService,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{
		repo:      repo,
		members:   members,
		reminders: reminders,
		log:       log,
	}
}

// AssignTask creates a To-do task for memberID, who must belong to the project.
func (s *TaskService) AssignTask(ctx context.Context, projectID, adminID, memberID string, input TaskInput) (*model.Task, error) {
	if _, err := s.members.FindMember(ctx, projectID, memberID); err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.Validation("description is required")
	}

	task, err := s.repo.CreateTask(ctx, &model.Task{
		ProjectID:    projectID,
		MemberID:     memberID,
		AssignedByID: adminID,
		Description:  description,
		Deadline:     utcPtr(input.Deadline),
		Urgent:       input.Urgent,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("project_id", projectID).Str("member_id", memberID).Msg("task assigned")
	s.reminders.notify(ctx, memberID, adminID, projectID, describeTask("New task assigned", task.Description))
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, projectID, id string) (*model.Task, error) {
	return s.repo.FindInProject(ctx, projectID, id)
}

// UpdateTask edits the task's details. Status only moves through Submit/Approve/Reject.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, id string, input TaskInput) (*model.Task, error) {
	task, err := s.repo.FindInProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.Validation("description is required")
	}

	task.Description = description
	task.Deadline = utcPtr(input.Deadline)
	task.Urgent = input.Urgent

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, projectID, id string) error {
	if _, err := s.repo.FindInProject(ctx, projectID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) ListProjectTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	return s.repo.ListByProject(ctx, projectID)
}

// TasksPerMember also returns tasks of users who have since left the project.
func (s *TaskService) TasksPerMember(ctx context.Context, projectID, memberID string) ([]model.Task, error) {
	return s.repo.ListByProjectAndMember(ctx, projectID, memberID)
}

func (s *TaskService) SubmittedTasks(ctx context.Context, projectID string) ([]model.Task, error) {
	return s.repo.ListByProjectAndStatus(ctx, projectID, constants.StatusAwaitingReview)
}

func (s *TaskService) TasksForUser(ctx context.Context, userID string) ([]model.Task, error) {
	return s.repo.ListByMember(ctx, userID)
}

// SubmitTask is done by the assignee and notifies the admin who assigned it.
func (s *TaskService) SubmitTask(ctx context.Context, projectID, id, actorID string) (*model.Task, error) {
	task, err := s.repo.FindInProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}
	if task.MemberID != actorID {
		return nil, apperrors.ErrNotAssignee
	}

	if err := s.apply(ctx, task, ActionSubmit); err != nil {
		return nil, err
	}

	s.reminders.notify(ctx, task.AssignedByID, actorID, projectID, describeTask("Task awaiting review", task.Description))
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ApproveTask(ctx context.Context, projectID, id, actorID string) (*model.Task, error) {
	return s.review(ctx, projectID, id, actorID, ActionApprove, "Task approved")
}

func (s *TaskService) RejectTask(ctx context.Context, projectID, id, actorID string) (*model.Task, error) {
	return s.review(ctx, projectID, id, actorID, ActionReject, "Task returned for changes")
}

func (s *TaskService) review(ctx context.Context, projectID, id, actorID string, action TaskAction, verb string) (*model.Task, error) {
	task, err := s.repo.FindInProject(ctx, projectID, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, task, action); err != nil {
		return nil, err
	}

	s.reminders.notify(ctx, task.MemberID, actorID, projectID, describeTask(verb, task.Description))
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) apply(ctx context.Context, task *model.Task, action TaskAction) error {
	from := task.Status
	to, err := NextStatus(from, action)
	if err != nil {
		return err
	}

	if err := s.repo.TransitionStatus(ctx, task, from, to); err != nil {
		return err
	}

	s.log.Info().
		Str("task_id", task.ID).
		Str("action", string(action)).
		Str("from", string(from)).
		Str("to", string(to)).
		Msg("task status changed")
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
