package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	"project-hub.com/project-hub/internal/security"
	model "project-hub.com/project-hub/pkg/models"
)

// MembershipService answers role questions about a project and changes its member list.
type MembershipService struct {
	projects *repository.ProjectRepository
	members  *repository.MemberRepository
	users    *repository.UserRepository
	baseURL  string
	log      zerolog.Logger
}

func NewMembershipService(
	projects *repository.ProjectRepository,
	members *repository.MemberRepository,
	users *repository.UserRepository,
	baseURL string,
	log zerolog.Logger,
) *MembershipService {
	return &MembershipService{
		projects: projects,
		members:  members,
		users:    users,
		baseURL:  strings.TrimRight(baseURL, "/"),
		log:      log,
	}
}

// Authorize is the gate in front of every project-scoped operation. It fails with
// ErrProjectNotFound for an unknown project and ErrForbidden when userID lacks level.
func (s *MembershipService) Authorize(ctx context.Context, projectID, userID string, level constants.Access) (*model.Member, error) {
	member, err := s.members.FindMember(ctx, projectID, userID)
	if err == nil {
		if !member.Allows(level) {
			return nil, apperrors.ErrForbidden
		}
		return member, nil
	}
	if !errors.Is(err, apperrors.ErrMemberNotFound) {
		return nil, err
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrProjectNotFound
	}
	return nil, apperrors.ErrForbidden
}

func (s *MembershipService) IsMember(ctx context.Context, projectID, userID string) (bool, error) {
	return s.has(ctx, projectID, userID, constants.AccessMember)
}

func (s *MembershipService) IsAdmin(ctx context.Context, projectID, userID string) (bool, error) {
	return s.has(ctx, projectID, userID, constants.AccessAdmin)
}

func (s *MembershipService) IsOwner(ctx context.Context, projectID, userID string) (bool, error) {
	return s.has(ctx, projectID, userID, constants.AccessOwner)
}

func (s *MembershipService) has(ctx context.Context, projectID, userID string, level constants.Access) (bool, error) {
	member, err := s.members.FindMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			return false, nil
		}
		return false, err
	}
	return member.Allows(level), nil
}

func (s *MembershipService) AddMember(ctx context.Context, projectID, email string) (*model.Member, error) {
	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrProjectNotFound
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	member, err := s.members.InsertMember(ctx, projectID, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", user.ID).Msg("member added")
	return member, nil
}

// PromoteToAdmin is idempotent for members that already hold the admin role.
func (s *MembershipService) PromoteToAdmin(ctx context.Context, projectID, userID string) (*model.Member, error) {
	if err := s.members.SetRole(ctx, projectID, userID, constants.RoleAdmin); err != nil {
		return nil, err
	}
	return s.members.FindMember(ctx, projectID, userID)
}

// RemoveMember returns the remaining member list. The owner can never be removed and
// only the owner may remove another admin.
func (s *MembershipService) RemoveMember(ctx context.Context, projectID, actorID, userID string) ([]model.Member, error) {
	target, err := s.members.FindMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if target.Owner {
		return nil, apperrors.ErrOwnerImmutable
	}
	if target.IsAdmin() && actorID != userID {
		isOwner, err := s.IsOwner(ctx, projectID, actorID)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			return nil, apperrors.ErrForbidden
		}
	}

	if err := s.members.DeleteMember(ctx, projectID, userID); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("member removed")
	return s.members.ListMembers(ctx, projectID, "")
}

func (s *MembershipService) AcceptInvite(ctx context.Context, inviteToken, userID string) (*model.Member, error) {
	project, err := s.projects.FindByInviteToken(ctx, inviteToken)
	if err != nil {
		return nil, err
	}

	return s.members.InsertMember(ctx, project.ID, userID)
}

// JoinProject accepts an invite link; the token must belong to projectID.
func (s *MembershipService) JoinProject(ctx context.Context, projectID, inviteToken, userID string) (*model.Member, error) {
	project, err := s.projects.FindByInviteToken(ctx, inviteToken)
	if err != nil {
		return nil, err
	}
	if project.ID != projectID {
		return nil, apperrors.ErrInviteNotFound
	}

	member, err := s.members.InsertMember(ctx, project.ID, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("user_id", userID).Msg("invite accepted")
	return member, nil
}

func (s *MembershipService) InviteLink(ctx context.Context, projectID string) (string, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	return s.inviteURL(project.ID, project.InviteToken), nil
}

// RegenerateInvite rotates the token, invalidating every link handed out before.
func (s *MembershipService) RegenerateInvite(ctx context.Context, projectID string) (string, error) {
	token, err := security.RandomToken()
	if err != nil {
		return "", err
	}
	if err := s.projects.SetInviteToken(ctx, projectID, token); err != nil {
		return "", err
	}
	return s.inviteURL(projectID, token), nil
}

func (s *MembershipService) inviteURL(projectID, token string) string {
	return fmt.Sprintf("%s/projects/%s/invite/%s", s.baseURL, projectID, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
