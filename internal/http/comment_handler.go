package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "project-hub.com/project-hub/internal/data_models"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
)

func (h *Handler) ListComments(c echo.Context) error {
	thread, err := h.comments.Thread(c.Request().Context(), c.Param("projectId"), c.Param("taskId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"comments": thread})
}

func (h *Handler) CreateComment(c echo.Context) error {
	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.comments.CreateComment(
		c.Request().Context(),
		c.Param("projectId"),
		c.Param("taskId"),
		middleware.CurrentUserID(c),
		req.Content,
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ReplyComment(c echo.Context) error {
	var req dto.CommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	reply, err := h.comments.Reply(
		c.Request().Context(),
		c.Param("projectId"),
		c.Param("taskId"),
		c.Param("commentId"),
		middleware.CurrentUserID(c),
		req.Content,
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, reply)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	member := middleware.CurrentMember(c)

	err := h.comments.DeleteComment(
		c.Request().Context(),
		c.Param("projectId"),
		c.Param("taskId"),
		c.Param("commentId"),
		middleware.CurrentUserID(c),
		member != nil && member.IsAdmin(),
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
