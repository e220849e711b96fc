package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	db    *gorm.DB
	redis Pinger
}

// NewHealthChecker checks the database and, when redis is non-nil, the session store.
func NewHealthChecker(db *gorm.DB, redis Pinger) *HealthChecker {
	return &HealthChecker{db: db, redis: redis}
}

func (hc *HealthChecker) check(ctx context.Context) (map[string]string, bool) {
	checks := map[string]string{}
	ok := true

	if sqlDB, err := hc.db.DB(); err != nil {
		checks["database"] = "down: " + err.Error()
		ok = false
	} else if err := sqlDB.PingContext(ctx); err != nil {
		checks["database"] = "down: " + err.Error()
		ok = false
	} else {
		checks["database"] = "ok"
	}

	if hc.redis != nil {
		if err := hc.redis.Ping(ctx); err != nil {
			checks["redis"] = "down: " + err.Error()
			ok = false
		} else {
			checks["redis"] = "ok"
		}
	}

	return checks, ok
}

func (h *Handler) Health(c echo.Context) error {
	if h.health == nil {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	checks, ok := h.health.check(ctx)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"status": "unhealthy",
			"checks": checks,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
		"checks": checks,
	})
}
