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

type firestoreAdminRepository struct {
	client *firestore.Client
}

func NewFirestoreAdminRepository(client *firestore.Client) repository.AdminRepository {
	return &firestoreAdminRepository{
		client: client,
	}
}

func (r *firestoreAdminRepository) GetAdminUIDs(ctx context.Context) ([]string, bool, error) {
	doc, err := r.client.Collection("config").Doc("admins").Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, false, nil
		}
		return nil, false, errors.Internal("Failed to read admin list", err)
	}

	var list entity.AdminList
	if err := doc.DataTo(&list); err != nil {
		return nil, false, errors.Internal("Failed to parse admin list", err)
	}

	return list.UIDs, true, nil
}
