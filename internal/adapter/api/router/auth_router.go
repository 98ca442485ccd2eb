package router

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/handler"
	"talentflow/internal/adapter/api/middleware"
	"talentflow/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	e.POST("/v1/auth/login", authHandler.Login, rateLimit.PerIP(ratelimit.ActionLogin))

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("/session", authHandler.Session)
}
