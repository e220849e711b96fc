package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "project-hub.com/project-hub/internal/data_models"
	apperrors "project-hub.com/project-hub/internal/errors"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
)

func (h *Handler) ListMembers(c echo.Context) error {
	role, err := roleFilter(c)
	if err != nil {
		return err
	}

	members, err := h.projects.MembersByRole(c.Request().Context(), c.Param("projectId"), role)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(members),
		"members": members,
	})
}

func (h *Handler) AddMember(c echo.Context) error {
	var req dto.AddMemberRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	member, err := h.memberships.AddMember(c.Request().Context(), c.Param("projectId"), req.Email)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, member)
}

func (h *Handler) PromoteAdmin(c echo.Context) error {
	member, err := h.memberships.PromoteToAdmin(c.Request().Context(), c.Param("projectId"), c.Param("memberId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, member)
}

func (h *Handler) RemoveMember(c echo.Context) error {
	members, err := h.memberships.RemoveMember(
		c.Request().Context(),
		c.Param("projectId"),
		middleware.CurrentUserID(c),
		c.Param("memberId"),
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(members),
		"members": members,
	})
}

func (h *Handler) SendReminder(c echo.Context) error {
	var req dto.ReminderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	projectID := c.Param("projectId")
	memberID := c.Param("memberId")

	isMember, err := h.memberships.IsMember(ctx, projectID, memberID)
	if err != nil {
		return h.fail(c, err)
	}
	if !isMember {
		return h.fail(c, apperrors.ErrMemberNotFound)
	}

	reminder, err := h.reminders.Send(ctx, memberID, middleware.CurrentUserID(c), projectID, req.Message)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, reminder)
}
