package handler

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/middleware"
	"talentflow/pkg/response"
)

type AdminHandler struct {
	admins middleware.PrivilegeChecker
}

func NewAdminHandler(admins middleware.PrivilegeChecker) *AdminHandler {
	return &AdminHandler{
		admins: admins,
	}
}

// Check tells the caller whether they hold admin privileges.
func (h *AdminHandler) Check(c echo.Context) error {
	uid := getUserIDFromContext(c)
	return response.Success(c, map[string]interface{}{
		"uid":        uid,
		"privileged": h.admins.IsPrivileged(c.Request().Context(), uid),
	})
}
