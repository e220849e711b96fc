package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "project-hub.com/project-hub/internal/data_models"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
	"project-hub.com/project-hub/internal/services"
)

func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(users),
		"users": users,
	})
}

func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.users.GetUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), c.Param("userId"), services.ProfileInput{
		Username:     req.Username,
		Email:        req.Email,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.users.DeleteUser(ctx, c.Param("userId")); err != nil {
		return h.fail(c, err)
	}

	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.auth.Logout(ctx, cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("failed to drop session of deleted user")
		}
	}
	h.setSessionCookie(c, "", -1)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UserProjects(c echo.Context) error {
	role, err := roleFilter(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListForUser(c.Request().Context(), c.Param("userId"), role)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) UserTasks(c echo.Context) error {
	tasks, err := h.tasks.TasksForUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.fail(c, err)
	}

	return taskList(c, tasks)
}

func (h *Handler) UserReminders(c echo.Context) error {
	reminders, err := h.reminders.List(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":     len(reminders),
		"reminders": reminders,
	})
}

func (h *Handler) DeleteReminder(c echo.Context) error {
	if err := h.reminders.Delete(c.Request().Context(), c.Param("userId"), c.Param("reminderId")); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
