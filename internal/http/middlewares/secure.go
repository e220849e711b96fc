package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/unrolled/secure"
)

func SecureHeaders(isDevelopment bool) echo.MiddlewareFunc {
	s := secure.New(secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
	return echo.WrapMiddleware(s.Handler)
}
