package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
)

type UserHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func authResponse(user *models.User, token string) transport.AuthResponse {
	return transport.AuthResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}
}

func (h *UserHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Register(ctx, req)
	if err != nil {
		return serviceError(l, "register_error", err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"email":   user.Email,
	})

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, authResponse(user, token))
}

func (h *UserHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Login(ctx, req)
	if err != nil {
		return serviceError(l, "login_error", err)
	}

	publish(c, h.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
	})

	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, authResponse(user, token))
}

func (h *UserHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.profile")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.Svc.Profile(ctx, userID)
	if err != nil {
		return serviceError(l, "profile_error", err)
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.update_profile")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, userID, req)
	if err != nil {
		return serviceError(l, "update_profile_error", err)
	}

	l.Info("update_profile_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}
