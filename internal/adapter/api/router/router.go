package router

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/handler"
	"talentflow/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Chat      *handler.ChatHandler
	Admin     *handler.AdminHandler
	WebSocket *handler.WebSocketHandler
	Health    *handler.HealthHandler
}

type Middlewares struct {
	Auth      *middleware.AuthMiddleware
	Admin     *middleware.AdminMiddleware
	RateLimit *middleware.RateLimitMiddleware
}

func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	SetupHealthRouter(e, h.Health)
	SetupAuthRouter(e, h.Auth, m.Auth, m.RateLimit)
	SetupChatRouter(e, h.Chat, m.Auth, m.RateLimit)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupAdminRouter(e, h.Admin, h.Chat, m.Auth, m.Admin, m.RateLimit)
}
