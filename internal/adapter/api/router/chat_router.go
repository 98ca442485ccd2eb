package router

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/handler"
	"talentflow/internal/adapter/api/middleware"
	"talentflow/internal/infrastructure/ratelimit"
)

// SetupChatRouter sets up the caller's support conversation routes.
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, rateLimit *middleware.RateLimitMiddleware) {
	supportGroup := e.Group("/v1/support")
	supportGroup.Use(authMiddleware.Authenticate)

	// GET /v1/support/messages - current messages
	supportGroup.GET("/messages", chatHandler.GetMessages)
	// POST /v1/support/messages - multipart text and/or file
	supportGroup.POST("/messages", chatHandler.SendMessage, rateLimit.PerUser(ratelimit.ActionSendMessage))
}
