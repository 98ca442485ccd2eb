package router

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/handler"
	"talentflow/internal/adapter/api/middleware"
	"talentflow/internal/infrastructure/ratelimit"
)

func SetupAdminRouter(e *echo.Echo, adminHandler *handler.AdminHandler, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	adminGroup := e.Group("/v1/admin")
	adminGroup.Use(authMiddleware.Authenticate)

	adminGroup.GET("/check", adminHandler.Check)

	supportGroup := adminGroup.Group("/support")
	supportGroup.Use(adminMiddleware.AdminOnly)

	supportGroup.GET("/:uid/messages", chatHandler.GetUserMessages)
	supportGroup.POST("/:uid/messages", chatHandler.ReplyMessage, rateLimit.PerUser(ratelimit.ActionSendMessage))
}
