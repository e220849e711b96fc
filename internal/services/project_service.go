package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	"project-hub.com/project-hub/internal/security"
	model "project-hub.com/project-hub/pkg/models"
)

type ProjectInput struct {
	Name        string
	Client      string
	Description string
	Deadline    time.Time
}

type ProjectService struct {
	projects *repository.ProjectRepository
	members  *repository.MemberRepository
	tasks    *repository.TaskRepository
	log      zerolog.Logger
}

func NewProjectService(
	projects *repository.ProjectRepository,
	members *repository.MemberRepository,
	tasks *repository.TaskRepository,
	log zerolog.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		members:  members,
		tasks:    tasks,
		log:      log,
	}
}

// CreateProject makes ownerID the project's admin and owner.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID string, input ProjectInput) (*model.Project, error) {
	token, err := security.RandomToken()
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        input.Name,
		Client:      input.Client,
		Description: input.Description,
		Deadline:    input.Deadline.UTC(),
		Status:      constants.ProjectInProgress,
		InviteToken: token,
	}

	created, err := s.projects.CreateProject(ctx, project, ownerID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", created.ID).Str("owner_id", ownerID).Msg("project created")
	return created, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) ListForUser(ctx context.Context, userID string, role constants.Role) ([]model.Project, error) {
	if role != "" && !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.projects.ListForUser(ctx, userID, role)
}

// UpdateProject returns the project re-read with its members expanded.
func (s *ProjectService) UpdateProject(ctx context.Context, id string, input ProjectInput) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Client = input.Client
	project.Description = input.Description
	project.Deadline = input.Deadline.UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) UpdateStatus(ctx context.Context, id string, status constants.ProjectStatus) (*model.Project, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Status = status
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) MembersByRole(ctx context.Context, projectID string, role constants.Role) ([]model.Member, error) {
	if role != "" && !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	return s.members.ListMembers(ctx, projectID, role)
}

// Progress is the completed share of the project's tasks as a percentage rounded up.
// A project without tasks reports 0.
func (s *ProjectService) Progress(ctx context.Context, projectID string) (int, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperrors.ErrProjectNotFound
	}

	total, completed, err := s.tasks.CountByStatus(ctx, projectID)
	if err != nil {
		return 0, err
	}

	return progressPercent(completed, total), nil
}

func progressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int((100*completed + total - 1) / total)
}
