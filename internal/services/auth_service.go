package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"project-hub.com/project-hub/internal/auth"
	apperrors "project-hub.com/project-hub/internal/errors"
	"project-hub.com/project-hub/internal/mail"
	repository "project-hub.com/project-hub/internal/repositories"
	"project-hub.com/project-hub/internal/security"
	"project-hub.com/project-hub/internal/sessions"
	model "project-hub.com/project-hub/pkg/models"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type OAuthProfile struct {
	Provider     string
	Subject      string
	Email        string
	Name         string
	ProfileImage string
}

// LoginResult carries both credential variants: the sid cookie value and a bearer token.
type LoginResult struct {
	User        *model.User   `json:"user"`
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
	SessionID   string        `json:"-"`
	Membership  *model.Member `json:"membership,omitempty"`
}

type AuthService struct {
	users       *repository.UserRepository
	hasher      security.PasswordHasher
	tokens      *auth.TokenIssuer
	sessions    sessions.Store
	sessionTTL  time.Duration
	mailer      mail.Mailer
	memberships *MembershipService
	resetTTL    time.Duration
	now         func() time.Time
	log         zerolog.Logger
}

func NewAuthService(
	users *repository.UserRepository,
	hasher security.PasswordHasher,
	tokens *auth.TokenIssuer,
	sessionStore sessions.Store,
	sessionTTL time.Duration,
	mailer mail.Mailer,
	memberships *MembershipService,
	resetTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		sessions:    sessionStore,
		sessionTTL:  sessionTTL,
		mailer:      mailer,
		memberships: memberships,
		resetTTL:    resetTTL,
		now:         time.Now,
		log:         log,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login verifies the credentials and starts a session. A non-empty inviteToken joins the
// user to the invited project; an invite the user already accepted is not an error.
func (s *AuthService) Login(ctx context.Context, email, password, inviteToken string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == "" || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	var membership *model.Member
	if inviteToken != "" {
		membership, err = s.memberships.AcceptInvite(ctx, inviteToken, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrAlreadyMember) {
			return nil, err
		}
	}

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	result.Membership = membership
	return result, nil
}

// LoginWithOAuth finds the user by provider subject, then by email (linking the account),
// and otherwise creates a password-less account.
func (s *AuthService) LoginWithOAuth(ctx context.Context, profile OAuthProfile) (*LoginResult, error) {
	if profile.Subject == "" {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := s.users.FindByGoogleID(ctx, profile.Subject)
	if errors.Is(err, apperrors.ErrUserNotFound) && profile.Email != "" {
		user, err = s.users.FindByEmail(ctx, normalizeEmail(profile.Email))
		if err == nil {
			err = s.users.LinkGoogleID(ctx, user.ID, profile.Subject)
		}
	}
	if errors.Is(err, apperrors.ErrUserNotFound) {
		if profile.Email == "" {
			return nil, apperrors.ErrUnauthorized
		}
		subject := profile.Subject
		user = &model.User{
			Username:     profile.Name,
			Email:        normalizeEmail(profile.Email),
			GoogleID:     &subject,
			ProfileImage: profile.ProfileImage,
		}
		err = s.users.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate resolves a bearer token first, then a session id, to the id of an existing user.
func (s *AuthService) Authenticate(ctx context.Context, bearerToken, sessionID string) (string, error) {
	var userID string
	switch {
	case bearerToken != "":
		id, err := s.tokens.ValidateAccessToken(bearerToken)
		if err != nil {
			return "", apperrors.ErrUnauthorized
		}
		userID = id
	case sessionID != "":
		id, err := s.sessions.Lookup(ctx, sessionID)
		if err != nil {
			if errors.Is(err, sessions.ErrSessionNotFound) {
				return "", apperrors.ErrUnauthorized
			}
			return "", err
		}
		userID = id
	default:
		return "", apperrors.ErrUnauthorized
	}

	// Tokens outlive a deleted account until they expire.
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// RequestPasswordReset never reports whether the email is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := security.RandomToken()
	if err != nil {
		return err
	}

	expiresAt := s.now().Add(s.resetTTL).UTC()
	if err := s.users.SetResetToken(ctx, user.ID, security.SHA256Hex(token), expiresAt); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, token); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("failed to send password reset email")
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.users.FindByResetTokenHash(ctx, security.SHA256Hex(token))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiresAt == nil || !s.now().Before(*user.ResetTokenExpiresAt) {
		return apperrors.ErrInvalidResetToken
	}

	return s.setPassword(ctx, user, newPassword)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.PasswordHash != "" && !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	return s.setPassword(ctx, user, newPassword)
}

func (s *AuthService) setPassword(ctx context.Context, user *model.User, newPassword string) error {
	if user.PasswordHash != "" && s.hasher.Verify(newPassword, user.PasswordHash) {
		return apperrors.ErrSamePassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *AuthService) startSession(ctx context.Context, user *model.User) (*LoginResult, error) {
	sessionID, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   expiresAt,
		SessionID:   sessionID,
	}, nil
}
