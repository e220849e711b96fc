package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markbates/goth/gothic"

	"project-hub.com/project-hub/internal/auth"
	dto "project-hub.com/project-hub/internal/data_models"
	middleware "project-hub.com/project-hub/internal/http/middlewares"
	"project-hub.com/project-hub/internal/services"
)

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Request().Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, req.InviteToken)
	middleware.RecordAuthAttempt("password", err == nil)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookie(c, result.SessionID, h.auth.SessionTTL())
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return h.fail(c, err)
		}
	}

	h.setSessionCookie(c, "", -1)
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword answers the same way whether or not the email is registered.
func (h *Handler) ForgotPassword(c echo.Context) error {
	var req dto.ForgotPasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"message": "if the email is registered, a reset link has been sent",
	})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req dto.ResetPasswordRequest
	req.ResetToken = c.QueryParam("resetToken")
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.ResetToken, req.Password); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (h *Handler) ChangePassword(c echo.Context) error {
	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.auth.ChangePassword(c.Request().Context(), middleware.CurrentUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

func (h *Handler) GoogleLogin(c echo.Context) error {
	if !h.oauthEnabled {
		return echo.NewHTTPError(http.StatusNotFound, "google login is not configured")
	}

	gothic.BeginAuthHandler(c.Response(), withProvider(c.Request(), auth.ProviderGoogle))
	return nil
}

func (h *Handler) GoogleCallback(c echo.Context) error {
	if !h.oauthEnabled {
		return echo.NewHTTPError(http.StatusNotFound, "google login is not configured")
	}

	gothUser, err := gothic.CompleteUserAuth(c.Response(), withProvider(c.Request(), auth.ProviderGoogle))
	if err != nil {
		middleware.RecordAuthAttempt(auth.ProviderGoogle, false)
		h.log.Warn().Err(err).Msg("google callback failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "google login failed")
	}

	name := gothUser.Name
	if name == "" {
		name = gothUser.NickName
	}

	result, err := h.auth.LoginWithOAuth(c.Request().Context(), services.OAuthProfile{
		Provider:     gothUser.Provider,
		Subject:      gothUser.UserID,
		Email:        gothUser.Email,
		Name:         name,
		ProfileImage: gothUser.AvatarURL,
	})
	middleware.RecordAuthAttempt(auth.ProviderGoogle, err == nil)
	if err != nil {
		return h.fail(c, err)
	}

	h.setSessionCookie(c, result.SessionID, h.auth.SessionTTL())
	return c.JSON(http.StatusOK, result)
}

// withProvider names the provider in the query, which is where gothic looks for it.
func withProvider(r *http.Request, provider string) *http.Request {
	r2 := r.Clone(r.Context())
	q := r2.URL.Query()
	q.Set("provider", provider)
	r2.URL.RawQuery = q.Encode()
	return r2
}

// setSessionCookie writes the sid cookie; a negative ttl clears it.
func (h *Handler) setSessionCookie(c echo.Context, sessionID string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
	} else {
		cookie.MaxAge = int(ttl.Seconds())
		cookie.Expires = time.Now().Add(ttl)
	}
	c.SetCookie(cookie)
}
