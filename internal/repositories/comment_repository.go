package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "project-hub.com/project-hub/internal/errors"
	model "project-hub.com/project-hub/pkg/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, comment.ID)
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.withAuthor(r.db.WithContext(ctx)).First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns every comment of the task, replies included, oldest first.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.withAuthor(r.db.WithContext(ctx)).
		Where("task_id = ?", taskID).
		Order("created_at asc, id asc").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Comment{}).Error
}

func (r *CommentRepository) withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("Author", func(db *gorm.DB) *gorm.DB {
		return db.Select(model.UserSummaryColumns)
	})
}
