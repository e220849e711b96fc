package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SelfOnly restricts a /users/:userId route to that user.
func SelfOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Param("userId") != CurrentUserID(c) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}
