package services

import (
	"context"
	"strings"

	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	model "project-hub.com/project-hub/pkg/models"
)

type CommentService struct {
	repo  *repository.CommentRepository
	tasks *repository.TaskRepository
}

func NewCommentService(repo *repository.CommentRepository, tasks *repository.TaskRepository) *CommentService {
	return &CommentService{
		repo:  repo,
		tasks: tasks,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, projectID, taskID, authorID, content string) (*model.Comment, error) {
	if _, err := s.tasks.FindInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content is required")
	}

	comment, err := s.repo.CreateComment(ctx, &model.Comment{
		TaskID:   taskID,
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	comment.Replies = []*model.Comment{}
	return comment, nil
}

// Reply attaches a new comment under commentID. The reply shares the parent's task.
func (s *CommentService) Reply(ctx context.Context, projectID, taskID, commentID, authorID, content string) (*model.Comment, error) {
	if _, err := s.tasks.FindInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	parent, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if parent.TaskID != taskID {
		return nil, apperrors.ErrCommentNotFound
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.Validation("content is required")
	}

	reply, err := s.repo.CreateComment(ctx, &model.Comment{
		TaskID:   taskID,
		ParentID: &parent.ID,
		AuthorID: authorID,
		Content:  content,
	})
	if err != nil {
		return nil, err
	}

	reply.Replies = []*model.Comment{}
	return reply, nil
}

// Thread returns the task's top-level comments with their replies nested to any depth.
func (s *CommentService) Thread(ctx context.Context, projectID, taskID string) ([]*model.Comment, error) {
	if _, err := s.tasks.FindInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	comments, err := s.repo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return buildThread(comments), nil
}

// DeleteComment removes the comment and every reply below it.
func (s *CommentService) DeleteComment(ctx context.Context, projectID, taskID, commentID, actorID string, actorIsAdmin bool) error {
	if _, err := s.tasks.FindInProject(ctx, projectID, taskID); err != nil {
		return err
	}

	target, err := s.repo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if target.TaskID != taskID {
		return apperrors.ErrCommentNotFound
	}
	if target.AuthorID != actorID && !actorIsAdmin {
		return apperrors.ErrForbidden
	}

	comments, err := s.repo.ListByTask(ctx, taskID)
	if err != nil {
		return err
	}

	return s.repo.DeleteByIDs(ctx, subtreeIDs(comments, commentID))
}

// buildThread links a flat comment list into trees in one pass over an id index.
// Input order (oldest first) is kept for siblings. Replies whose parent is missing are dropped.
func buildThread(comments []*model.Comment) []*model.Comment {
	byID := make(map[string]*model.Comment, len(comments))
	for _, c := range comments {
		c.Replies = []*model.Comment{}
		byID[c.ID] = c
	}

	roots := []*model.Comment{}
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return roots
}

func subtreeIDs(comments []*model.Comment, rootID string) []string {
	children := make(map[string][]string, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []string{}
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)
		stack = append(stack, children[id]...)
	}
	return ids
}
