package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"project-hub.com/project-hub/internal/constants"
	apperrors "project-hub.com/project-hub/internal/errors"
	model "project-hub.com/project-hub/pkg/models"
)

const memberKey = "project_member"

type ProjectAuthorizer interface {
	Authorize(ctx context.Context, projectID, userID string, level constants.Access) (*model.Member, error)
}

// RequireProject admits the request only if the caller holds level on :projectId.
// Must run after Authenticate.
func RequireProject(a ProjectAuthorizer, level constants.Access) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			member, err := a.Authorize(c.Request().Context(), c.Param("projectId"), CurrentUserID(c), level)
			if err != nil {
				status := apperrors.StatusCode(err)
				if status == http.StatusInternalServerError {
					return err
				}
				return echo.NewHTTPError(status, err.Error())
			}

			c.Set(memberKey, member)
			return next(c)
		}
	}
}

// CurrentMember is the caller's membership row on the project of the request.
func CurrentMember(c echo.Context) *model.Member {
	member, _ := c.Get(memberKey).(*model.Member)
	return member
}
