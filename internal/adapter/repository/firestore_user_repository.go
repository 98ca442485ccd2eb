package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
	"talentflow/pkg/errors"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Exists(ctx context.Context, uid string) (bool, error) {
	doc, err := r.client.Collection("users").Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to read user profile", err)
	}
	return doc.Exists(), nil
}

func (r *firestoreUserRepository) MergeProfile(ctx context.Context, uid string, profile entity.UserProfile) error {
	_, err := r.client.Collection("users").Doc(uid).Set(ctx, map[string]interface{}{
		"firstName": profile.FirstName,
		"lastName":  profile.LastName,
		"email":     profile.Email,
	}, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to save user profile", err)
	}
	return nil
}
