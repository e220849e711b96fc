package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "project-hub.com/project-hub/internal/errors"
	"project-hub.com/project-hub/internal/services"
)

type Services struct {
	Auth        *services.AuthService
	Users       *services.UserService
	Projects    *services.ProjectService
	Memberships *services.MembershipService
	Tasks       *services.TaskService
	Comments    *services.CommentService
	Reminders   *services.ReminderService
}

type Handler struct {
	auth        *services.AuthService
	users       *services.UserService
	projects    *services.ProjectService
	memberships *services.MembershipService
	tasks       *services.TaskService
	comments    *services.CommentService
	reminders   *services.ReminderService

	health       *HealthChecker
	oauthEnabled bool
	secureCookie bool
	log          zerolog.Logger
}

type HandlerOptions struct {
	Health       *HealthChecker
	OAuthEnabled bool
	SecureCookie bool
}

func NewHandler(s Services, opts HandlerOptions, log zerolog.Logger) *Handler {
	return &Handler{
		auth:         s.Auth,
		users:        s.Users,
		projects:     s.Projects,
		memberships:  s.Memberships,
		tasks:        s.Tasks,
		comments:     s.Comments,
		reminders:    s.Reminders,
		health:       opts.Health,
		oauthEnabled: opts.OAuthEnabled,
		secureCookie: opts.SecureCookie,
		log:          log,
	}
}

// fail turns a service error into the HTTP error echo renders. Unexpected errors are
// logged and answered with a generic message.
func (h *Handler) fail(c echo.Context, err error) error {
	var appErr *apperrors.Exception
	if errors.As(err, &appErr) {
		return echo.NewHTTPError(appErr.StatusCode, appErr.Message)
	}

	h.log.Error().Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

// bind decodes and validates the request into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrInvalidJSON.Message)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
