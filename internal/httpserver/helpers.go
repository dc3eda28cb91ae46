package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
)

func currentUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("user_id").(uint)
	if !ok || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return id, nil
}

func isAdmin(c echo.Context) bool {
	v, _ := c.Get("is_admin").(bool)
	return v
}

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}

// serviceError logs and maps a service-layer error onto its HTTP status.
func serviceError(l *slog.Logger, action string, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrPrecondition):
		status = http.StatusPreconditionFailed
	}

	if status >= 500 {
		l.Error(action, "status", status, "error", err)
		return echo.NewHTTPError(status, "internal error")
	}
	l.Warn(action, "status", status, "error", err)
	return echo.NewHTTPError(status, err.Error())
}
