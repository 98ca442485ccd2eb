package repository

import (
	"context"

	"talentflow/internal/domain/entity"
)

type UserRepository interface {
	Exists(ctx context.Context, uid string) (bool, error)
	MergeProfile(ctx context.Context, uid string, profile entity.UserProfile) error
}
