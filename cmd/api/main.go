package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"talentflow/internal/adapter/api"
	"talentflow/internal/adapter/api/handler"
	apimiddleware "talentflow/internal/adapter/api/middleware"
	"talentflow/internal/adapter/api/router"
	"talentflow/internal/adapter/repository"
	"talentflow/internal/infrastructure/firebase"
	"talentflow/internal/infrastructure/ratelimit"
	"talentflow/internal/infrastructure/websocket"
	"talentflow/internal/usecase"
	"talentflow/pkg/config"
	"talentflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closeLog := logger.Setup(cfg.LogFile)
	defer closeLog()

	ctx := context.Background()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase clients: %v", err)
	}
	defer clients.Close()

	chatRepo := repository.NewFirestoreChatRepository(clients.Firestore)
	adminRepo := repository.NewFirestoreAdminRepository(clients.Firestore)
	userRepo := repository.NewFirestoreUserRepository(clients.Firestore)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(clients.Auth, cfg.FirebaseApiKey)

	chatUseCase := usecase.NewChatUseCase(chatRepo, clients.Storage, cfg.SupportCounterpart, usecase.SystemClock())
	chatFeedUseCase := usecase.NewChatFeedUseCase(chatRepo)
	adminUseCase := usecase.NewAdminUseCase(adminRepo, cfg.FallbackAdminUID, cfg.AdminCacheTTL, usecase.SystemClock())
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)

	wsManager := websocket.NewManager()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	limiter := ratelimit.NewLimiter(ratelimit.DefaultPolicies, nil)
	stopCleanup := make(chan struct{})
	limiter.StartCleanup(30*time.Minute, time.Hour, stopCleanup)
	defer close(stopCleanup)

	middlewares := router.Middlewares{
		Auth:      apimiddleware.NewAuthMiddleware(firebaseAuthClient),
		Admin:     apimiddleware.NewAdminMiddleware(adminUseCase),
		RateLimit: apimiddleware.NewRateLimitMiddleware(limiter),
	}

	router.Setup(e, router.Handlers{
		Auth:      handler.NewAuthHandler(authUseCase),
		Chat:      handler.NewChatHandler(chatUseCase, chatFeedUseCase, cfg.MaxUploadBytes),
		Admin:     handler.NewAdminHandler(adminUseCase),
		WebSocket: handler.NewWebSocketHandler(wsManager, firebaseAuthClient, chatFeedUseCase, adminUseCase, limiter),
		Health:    handler.NewHealthHandler(wsManager),
	}, middlewares)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	wsManager.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}
