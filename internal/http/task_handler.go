package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "project-hub.com/project-hub/internal/data_models"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
	"project-hub.com/project-hub/internal/services"
	model "project-hub.com/project-hub/pkg/models"
)

func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.tasks.ListProjectTasks(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return h.fail(c, err)
	}

	return taskList(c, tasks)
}

func (h *Handler) SubmittedTasks(c echo.Context) error {
	tasks, err := h.tasks.SubmittedTasks(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return h.fail(c, err)
	}

	return taskList(c, tasks)
}

func (h *Handler) MemberTasks(c echo.Context) error {
	tasks, err := h.tasks.TasksPerMember(c.Request().Context(), c.Param("projectId"), c.Param("memberId"))
	if err != nil {
		return h.fail(c, err)
	}

	return taskList(c, tasks)
}

func (h *Handler) AssignTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.AssignTask(
		c.Request().Context(),
		c.Param("projectId"),
		middleware.CurrentUserID(c),
		c.Param("memberId"),
		taskInput(req),
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	task, err := h.tasks.GetTask(c.Request().Context(), c.Param("projectId"), c.Param("taskId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.TaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.UpdateTask(c.Request().Context(), c.Param("projectId"), c.Param("taskId"), taskInput(req))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	if err := h.tasks.DeleteTask(c.Request().Context(), c.Param("projectId"), c.Param("taskId")); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SubmitTask(c echo.Context) error {
	return h.transition(c, h.tasks.SubmitTask)
}

func (h *Handler) ApproveTask(c echo.Context) error {
	return h.transition(c, h.tasks.ApproveTask)
}

func (h *Handler) RejectTask(c echo.Context) error {
	return h.transition(c, h.tasks.RejectTask)
}

type transitionFunc func(ctx context.Context, projectID, taskID, actorID string) (*model.Task, error)

func (h *Handler) transition(c echo.Context, apply transitionFunc) error {
	task, err := apply(c.Request().Context(), c.Param("projectId"), c.Param("taskId"), middleware.CurrentUserID(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, task)
}

func taskInput(req dto.TaskRequest) services.TaskInput {
	return services.TaskInput{
		Description: req.Description,
		Deadline:    req.Deadline,
		Urgent:      req.Urgent,
	}
}

func taskList(c echo.Context, tasks []model.Task) error {
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}
