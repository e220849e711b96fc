package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	apperrors "project-hub.com/project-hub/internal/errors"
	repository "project-hub.com/project-hub/internal/repositories"
	model "project-hub.com/project-hub/pkg/models"
)

type ProfileInput struct {
	Username     *string
	Email        *string
	ProfileImage *string
}

type UserService struct {
	users *repository.UserRepository
	log   zerolog.Logger
}

func NewUserService(users *repository.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		log:   log,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input ProfileInput) (*model.User, error) {
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, apperrors.Validation("username cannot be empty")
		}
		input.Username = &username
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}

	return s.users.UpdateProfile(ctx, id, input.Username, input.Email, input.ProfileImage)
}

// DeleteUser also deletes every project the user owns.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
