package router

import (
	"github.com/labstack/echo/v4"

	"talentflow/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the live feed. Auth happens inside the handler
// since the token may arrive as a query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/support/ws", wsHandler.HandleFeed)
}
