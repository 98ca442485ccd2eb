package usecase

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/domain/entity"
	"talentflow/pkg/errors"
)

type fakeUserRepo struct {
	profiles map[string]entity.UserProfile
	err      error
	merges   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{profiles: make(map[string]entity.UserProfile)}
}

func (r *fakeUserRepo) Exists(ctx context.Context, uid string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.profiles[uid]
	return ok, nil
}

func (r *fakeUserRepo) MergeProfile(ctx context.Context, uid string, profile entity.UserProfile) error {
	r.merges++
	r.profiles[uid] = profile
	return nil
}

type fakeAuth struct {
	identities map[string]entity.Identity
	tokens     map[string]string
	passwords  map[string]string
}

func (a *fakeAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := a.tokens[token]
	if !ok {
		return "", stderrors.New("token expired")
	}
	return uid, nil
}

func (a *fakeAuth) GetIdentity(ctx context.Context, uid string) (entity.Identity, error) {
	identity, ok := a.identities[uid]
	if !ok {
		return entity.Identity{}, stderrors.New("user not found")
	}
	return identity, nil
}

func (a *fakeAuth) SignInWithEmailPassword(ctx context.Context, email, password string) (string, string, error) {
	for uid, identity := range a.identities {
		if identity.Email == email && a.passwords[uid] == password {
			return "id-token-" + uid, uid, nil
		}
	}
	return "", "", stderrors.New("INVALID_LOGIN_CREDENTIALS")
}

func newAuthFixture() (*AuthUseCase, *fakeUserRepo) {
	users := newFakeUserRepo()
	auth := &fakeAuth{
		identities: map[string]entity.Identity{
			"u1": {UID: "u1", DisplayName: "Ada King Lovelace", Email: "ada@example.com"},
		},
		tokens:    map[string]string{"google-token": "u1"},
		passwords: map[string]string{"u1": "secret"},
	}
	return NewAuthUseCase(users, auth), users
}

func TestLoginCreatesProfileOnFirstSignIn(t *testing.T) {
	uc, users := newAuthFixture()

	result, err := uc.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "id-token-u1", result.Token)
	assert.Equal(t, "u1", result.User.UID)
	assert.True(t, result.ProfileCreated)
	assert.Equal(t, entity.UserProfile{
		FirstName: "Ada",
		LastName:  "King Lovelace",
		Email:     "ada@example.com",
	}, users.profiles["u1"])
}

func TestLoginLeavesExistingProfileAlone(t *testing.T) {
	uc, users := newAuthFixture()
	users.profiles["u1"] = entity.UserProfile{FirstName: "Custom"}

	result, err := uc.Login(context.Background(), "ada@example.com", "secret")
	require.NoError(t, err)

	assert.False(t, result.ProfileCreated)
	assert.Equal(t, 0, users.merges)
	assert.Equal(t, "Custom", users.profiles["u1"].FirstName)
}

func TestLoginBadCredentials(t *testing.T) {
	uc, users := newAuthFixture()

	_, err := uc.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
	assert.Empty(t, users.profiles)

	notice := NoticeFor(err)
	assert.Equal(t, "Sign in failed", notice.Title)
	assert.Equal(t, "Please check your credentials and try again.", notice.Description)
}

func TestSessionBootstrapsProfile(t *testing.T) {
	uc, users := newAuthFixture()

	result, err := uc.Session(context.Background(), "google-token")
	require.NoError(t, err)
	assert.Empty(t, result.Token)
	assert.True(t, result.ProfileCreated)
	assert.Contains(t, users.profiles, "u1")

	_, err = uc.Session(context.Background(), "stale-token")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))
}

func TestEnsureProfilePropagatesStoreErrors(t *testing.T) {
	uc, users := newAuthFixture()
	users.err = stderrors.New("unavailable")

	_, err := uc.EnsureProfile(context.Background(), entity.Identity{UID: "u1"})
	assert.Error(t, err)
	assert.Equal(t, 0, users.merges)
}

func TestNoticeForUnknownError(t *testing.T) {
	notice := NoticeFor(stderrors.New("boom"))
	assert.Equal(t, entity.NoticeDestructive, notice.Variant)
	assert.Equal(t, "Error", notice.Title)
}
