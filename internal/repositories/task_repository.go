package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	model "project-hub.com/project-hub/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.ID = uuid.NewString()
	task.Status = constants.StatusTodo
	task.Version = 1
	task.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, task.ID)
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.withPeople(r.db.WithContext(ctx)).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// FindInProject treats a task of another project as missing.
func (r *TaskRepository) FindInProject(ctx context.Context, projectID, id string) (*model.Task, error) {
	task, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != projectID {
		return nil, apperrors.ErrTaskNotFound
	}
	return task, nil
}

func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

func (r *TaskRepository) ListByProjectAndMember(ctx context.Context, projectID, memberID string) ([]model.Task, error) {
	return r.list(ctx, "project_id = ? AND member_id = ?", projectID, memberID)
}

func (r *TaskRepository) ListByProjectAndStatus(ctx context.Context, projectID string, status constants.TaskStatus) ([]model.Task, error) {
	return r.list(ctx, "project_id = ? AND status = ?", projectID, status)
}

func (r *TaskRepository) ListByMember(ctx context.Context, memberID string) ([]model.Task, error) {
	return r.list(ctx, "member_id = ?", memberID)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	var tasks []model.Task
	err := r.withPeople(r.db.WithContext(ctx)).
		Where(query, args...).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// CountByStatus returns the total and completed task counts of a project.
func (r *TaskRepository) CountByStatus(ctx context.Context, projectID string) (int64, int64, error) {
	var counts struct {
		Total     int64
		Completed int64
	}

	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS completed", constants.StatusCompleted).
		Where("project_id = ?", projectID).
		Scan(&counts).Error
	if err != nil {
		return 0, 0, err
	}

	return counts.Total, counts.Completed, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"description": task.Description,
			"deadline":    task.Deadline,
			"urgent":      task.Urgent,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now().UTC(),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	task.Version++
	return nil
}

// TransitionStatus moves the task from -> to only if it is still in from.
func (r *TaskRepository) TransitionStatus(ctx context.Context, task *model.Task, from, to constants.TaskStatus) error {
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":     to,
		"version":    gorm.Expr("version + 1"),
		"updated_at": now,
	}
	switch to {
	case constants.StatusAwaitingReview:
		updates["submitted_at"] = now
	case constants.StatusCompleted:
		updates["completed_at"] = now
	case constants.StatusTodo:
		updates["submitted_at"] = nil
	}

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND status = ?", task.ID, from).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrInvalidTransition
	}

	task.Status = to
	task.Version++
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&model.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrTaskNotFound
		}
		return nil
	})
}

func (r *TaskRepository) withPeople(db *gorm.DB) *gorm.DB {
	summary := func(db *gorm.DB) *gorm.DB {
		return db.Select(model.UserSummaryColumns)
	}
	return db.Preload("Member", summary).Preload("AssignedBy", summary)
}
