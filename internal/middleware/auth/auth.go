package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/tokens"
)

type Middleware struct {
	JWTSecret []byte
}

func New(secret []byte) *Middleware {
	return &Middleware{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *Middleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *Middleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Middleware) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
		}

		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil || claims == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		userID, err := claims.UserID()
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
		}

		c.Set("user_id", userID)
		c.Set("is_admin", claims.IsAdmin)

		return next(c)
	}
}
