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

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateProject stores the project and its owner row (admin + owner) in one transaction.
func (r *ProjectRepository) CreateProject(ctx context.Context, project *model.Project, ownerID string) (*model.Project, error) {
	project.ID = uuid.NewString()
	project.Version = 1
	if project.Status == "" {
		project.Status = constants.ProjectInProgress
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}

		owner := &model.Member{
			ID:        uuid.NewString(),
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      constants.RoleAdmin,
			Owner:     true,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, project.ID)
}

// FindByID loads the project with its members and their user summaries.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.withMembers(r.db.WithContext(ctx)).First(&project, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) FindByInviteToken(ctx context.Context, token string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).First(&project, "invite_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListForUser returns the projects userID belongs to, optionally narrowed to one role.
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string, role constants.Role) ([]model.Project, error) {
	sub := r.db.Model(&model.Member{}).Select("project_id").Where("user_id = ?", userID)
	if role != "" {
		sub = sub.Where("role = ?", role)
	}

	var projects []model.Project
	err := r.withMembers(r.db.WithContext(ctx)).
		Where("id IN (?)", sub).
		Order("deadline asc").
		Find(&projects).Error
	return projects, err
}

// Update writes the editable fields guarded by the version column.
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND version = ?", project.ID, project.Version).
		Updates(map[string]interface{}{
			"name":        project.Name,
			"client":      project.Client,
			"description": project.Description,
			"deadline":    project.Deadline,
			"status":      project.Status,
			"version":     gorm.Expr("version + 1"),
			"updated_at":  time.Now().UTC(),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return apperrors.ErrOptimisticLock
	}

	project.Version++
	return nil
}

func (r *ProjectRepository) SetInviteToken(ctx context.Context, id, token string) error {
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("invite_token", token)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteProjectTx(tx, id)
	})
}

func (r *ProjectRepository) withMembers(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("Members.User", func(db *gorm.DB) *gorm.DB {
			return db.Select(model.UserSummaryColumns)
		})
}

// deleteProjectTx cascades a project delete to everything that references it.
func deleteProjectTx(tx *gorm.DB, projectID string) error {
	taskIDs := tx.Model(&model.Task{}).Select("id").Where("project_id = ?", projectID)

	if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Reminder{}).Error; err != nil {
		return err
	}
	if err := tx.Where("project_id = ?", projectID).Delete(&model.Member{}).Error; err != nil {
		return err
	}

	res := tx.Where("id = ?", projectID).Delete(&model.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}
