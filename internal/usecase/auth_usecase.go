package usecase

import (
	"context"

	"talentflow/internal/domain/entity"
	"talentflow/internal/domain/repository"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
)

const msgBadCredentials = "Please check your credentials and try again."

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type AuthResult struct {
	Token          string          `json:"token,omitempty"`
	User           entity.Identity `json:"user"`
	ProfileCreated bool            `json:"profile_created"`
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, uid, err := uc.firebaseAuth.SignInWithEmailPassword(ctx, email, password)
	if err != nil {
		logger.Warn("Login failed: %v", err)
		return nil, errors.Unauthorized(msgBadCredentials, err)
	}

	result, err := uc.bootstrap(ctx, uid)
	if err != nil {
		return nil, err
	}
	result.Token = token
	return result, nil
}

// Session finishes a sign-in completed on the client, e.g. through a social
// provider, by making sure the user has a profile.
func (uc *AuthUseCase) Session(ctx context.Context, idToken string) (*AuthResult, error) {
	uid, err := uc.firebaseAuth.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}
	return uc.bootstrap(ctx, uid)
}

func (uc *AuthUseCase) bootstrap(ctx context.Context, uid string) (*AuthResult, error) {
	identity, err := uc.firebaseAuth.GetIdentity(ctx, uid)
	if err != nil {
		logger.Error("Failed to load auth user %s: %v", uid, err)
		return nil, errors.Unauthorized(msgBadCredentials, err)
	}

	created, err := uc.EnsureProfile(ctx, identity)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: identity, ProfileCreated: created}, nil
}

// EnsureProfile creates users/{uid} from the auth identity when it does not
// exist yet. Existing profiles are left untouched.
func (uc *AuthUseCase) EnsureProfile(ctx context.Context, identity entity.Identity) (bool, error) {
	exists, err := uc.userRepo.Exists(ctx, identity.UID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if err := uc.userRepo.MergeProfile(ctx, identity.UID, entity.ProfileFromIdentity(identity)); err != nil {
		return false, err
	}
	logger.Info("Created profile for user %s", identity.UID)
	return true, nil
}
