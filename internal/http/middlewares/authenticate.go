package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "sid"

	userIDKey = "user_id"
)

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken, sessionID string) (string, error)
}

// Authenticate accepts a bearer token first and falls back to the session cookie.
func Authenticate(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sessionID string
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				sessionID = cookie.Value
			}

			userID, err := a.Authenticate(c.Request().Context(), bearerToken(c.Request()), sessionID)
			if err != nil || userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

func CurrentUserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
