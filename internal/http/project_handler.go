package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"project-hub.com/project-hub/internal/constants"
	dto "project-hub.com/project-hub/internal/data_models"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
	"project-hub.com/project-hub/internal/services"
)

func (h *Handler) ListProjects(c echo.Context) error {
	role, err := roleFilter(c)
	if err != nil {
		return err
	}

	projects, err := h.projects.ListForUser(c.Request().Context(), middleware.CurrentUserID(c), role)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.ProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projects.CreateProject(c.Request().Context(), middleware.CurrentUserID(c), projectInput(req))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) GetProject(c echo.Context) error {
	project, err := h.projects.GetProject(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	var req dto.ProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projects.UpdateProject(c.Request().Context(), c.Param("projectId"), projectInput(req))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProjectStatus(c echo.Context) error {
	var req dto.ProjectStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	project, err := h.projects.UpdateStatus(c.Request().Context(), c.Param("projectId"), constants.ProjectStatus(req.Status))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.projects.DeleteProject(c.Request().Context(), c.Param("projectId")); err != nil {
		return h.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ProjectProgress(c echo.Context) error {
	projectID := c.Param("projectId")
	progress, err := h.projects.Progress(c.Request().Context(), projectID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"project_id": projectID,
		"progress":   progress,
	})
}

func (h *Handler) InviteLink(c echo.Context) error {
	link, err := h.memberships.InviteLink(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"invite_link": link})
}

func (h *Handler) RegenerateInviteLink(c echo.Context) error {
	link, err := h.memberships.RegenerateInvite(c.Request().Context(), c.Param("projectId"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"invite_link": link})
}

func (h *Handler) AcceptInvite(c echo.Context) error {
	member, err := h.memberships.JoinProject(
		c.Request().Context(),
		c.Param("projectId"),
		c.Param("inviteToken"),
		middleware.CurrentUserID(c),
	)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, member)
}

func projectInput(req dto.ProjectRequest) services.ProjectInput {
	input := services.ProjectInput{
		Name:        req.Name,
		Client:      req.Client,
		Description: req.Description,
	}
	if req.Deadline != nil {
		input.Deadline = *req.Deadline
	}
	return input
}

func roleFilter(c echo.Context) (constants.Role, error) {
	filter := dto.RoleFilter{Role: c.QueryParam("role")}
	if err := c.Validate(&filter); err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return constants.Role(filter.Role), nil
}
