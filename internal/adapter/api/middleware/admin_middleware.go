package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PrivilegeChecker interface {
	IsPrivileged(ctx context.Context, uid string) bool
}

type AdminMiddleware struct {
	admins PrivilegeChecker
}

func NewAdminMiddleware(admins PrivilegeChecker) *AdminMiddleware {
	return &AdminMiddleware{
		admins: admins,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		if !m.admins.IsPrivileged(c.Request().Context(), uid) {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
