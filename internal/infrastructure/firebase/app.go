package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"talentflow/internal/infrastructure/storage"
	"talentflow/pkg/config"
	"talentflow/pkg/logger"
)

// Clients bundles the Firebase services the application talks to.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
	Storage   *storage.CloudStorageClient
}

// CredentialsOption picks the service account from the environment JSON
// first, then from a file path. Without either, application default
// credentials are used.
func CredentialsOption(cfg *config.Config) ([]option.ClientOption, error) {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))}, nil
	}

	if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(cfg.ServiceAccountPath)}, nil
	}

	logger.Info("Using application default credentials")
	return nil, nil
}

func NewClients(ctx context.Context, cfg *config.Config) (*Clients, error) {
	opts, err := CredentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %v", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %v", err)
	}

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to initialize Cloud Storage: %v", err)
	}

	return &Clients{
		Auth:      authClient,
		Firestore: firestoreClient,
		Storage:   storageClient,
	}, nil
}

func (c *Clients) Close() {
	if err := c.Storage.Close(); err != nil {
		logger.Warn("Failed to close storage client: %v", err)
	}
	if err := c.Firestore.Close(); err != nil {
		logger.Warn("Failed to close Firestore client: %v", err)
	}
}
