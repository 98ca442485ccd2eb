package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"talentflow/internal/adapter/repository"
	"talentflow/internal/infrastructure/firebase"
	"talentflow/internal/usecase"
	"talentflow/pkg/config"
	"talentflow/pkg/logger"
)

// app holds the wired usecases for one command invocation.
type app struct {
	cfg     *config.Config
	clients *firebase.Clients
	chat    *usecase.ChatUseCase
	feed    *usecase.ChatFeedUseCase
	admins  *usecase.AdminUseCase
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		return nil, err
	}

	chatRepo := repository.NewFirestoreChatRepository(clients.Firestore)
	adminRepo := repository.NewFirestoreAdminRepository(clients.Firestore)

	return &app{
		cfg:     cfg,
		clients: clients,
		chat:    usecase.NewChatUseCase(chatRepo, clients.Storage, cfg.SupportCounterpart, usecase.SystemClock()),
		feed:    usecase.NewChatFeedUseCase(chatRepo),
		admins:  usecase.NewAdminUseCase(adminRepo, cfg.FallbackAdminUID, cfg.AdminCacheTTL, usecase.SystemClock()),
	}, nil
}

func (a *app) Close() {
	a.clients.Close()
}

func main() {
	var logFile string

	root := &cobra.Command{
		Use:           "supportctl",
		Short:         "Operate talentflow support conversations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(logFile)
		},
	}

	root.PersistentFlags().StringVar(&logFile, "log-file", os.Getenv("LOG_FILE"), "append JSON logs to this file")

	root.AddCommand(watchCmd())
	root.AddCommand(sendCmd())
	root.AddCommand(isAdminCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
