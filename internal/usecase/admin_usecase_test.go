package usecase

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsPrivilegedServesFromCacheWithinTTL(t *testing.T) {
	repo := &fakeAdminRepo{uids: []string{"a1", "a2"}, found: true}
	clock := newFixedClock(time.Unix(1000, 0))
	uc := NewAdminUseCase(repo, "", 60*time.Second, clock)
	ctx := context.Background()

	assert.True(t, uc.IsPrivileged(ctx, "a1"))
	assert.Equal(t, 1, repo.readCount())

	clock.Advance(30 * time.Second)
	assert.True(t, uc.IsPrivileged(ctx, "a2"))
	assert.False(t, uc.IsPrivileged(ctx, "u1"))
	assert.Equal(t, 1, repo.readCount())

	clock.Advance(31 * time.Second)
	assert.True(t, uc.IsPrivileged(ctx, "a1"))
	assert.Equal(t, 2, repo.readCount())
}

func TestAdminListChangesAfterExpiry(t *testing.T) {
	repo := &fakeAdminRepo{uids: []string{"a1"}, found: true}
	clock := newFixedClock(time.Unix(1000, 0))
	uc := NewAdminUseCase(repo, "", 60*time.Second, clock)
	ctx := context.Background()

	assert.True(t, uc.IsPrivileged(ctx, "a1"))

	repo.mu.Lock()
	repo.uids = []string{"a2"}
	repo.mu.Unlock()

	assert.True(t, uc.IsPrivileged(ctx, "a1"), "stale within TTL")

	clock.Advance(60 * time.Second)
	assert.False(t, uc.IsPrivileged(ctx, "a1"))
	assert.True(t, uc.IsPrivileged(ctx, "a2"))
}

func TestIsPrivilegedFailsClosedOnReadError(t *testing.T) {
	repo := &fakeAdminRepo{uids: []string{"a1"}, found: true}
	clock := newFixedClock(time.Unix(1000, 0))
	uc := NewAdminUseCase(repo, "fallback", 60*time.Second, clock)
	ctx := context.Background()

	assert.True(t, uc.IsPrivileged(ctx, "a1"))

	repo.mu.Lock()
	repo.err = stderrors.New("unavailable")
	repo.mu.Unlock()

	clock.Advance(61 * time.Second)
	assert.False(t, uc.IsPrivileged(ctx, "a1"))
	assert.False(t, uc.IsPrivileged(ctx, "fallback"))
	assert.Empty(t, uc.AdminUIDs(ctx))
}

func TestBootstrapFallbackWhenDocumentMissing(t *testing.T) {
	repo := &fakeAdminRepo{found: false}
	clock := newFixedClock(time.Unix(1000, 0))
	uc := NewAdminUseCase(repo, "abc123", 60*time.Second, clock)
	ctx := context.Background()

	assert.True(t, uc.IsPrivileged(ctx, "abc123"))
	assert.False(t, uc.IsPrivileged(ctx, "xyz"))
	assert.Equal(t, []string{"abc123"}, uc.AdminUIDs(ctx))

	// the fallback is never cached, so creating the document takes effect at once
	reads := repo.readCount()
	repo.mu.Lock()
	repo.uids = []string{"xyz"}
	repo.found = true
	repo.mu.Unlock()

	assert.True(t, uc.IsPrivileged(ctx, "xyz"))
	assert.False(t, uc.IsPrivileged(ctx, "abc123"))
	assert.Equal(t, reads+1, repo.readCount())
}

func TestNoFallbackMeansNoAdmins(t *testing.T) {
	repo := &fakeAdminRepo{found: false}
	uc := NewAdminUseCase(repo, "", 60*time.Second, newFixedClock(time.Unix(1000, 0)))

	assert.Empty(t, uc.AdminUIDs(context.Background()))
	assert.False(t, uc.IsPrivileged(context.Background(), "abc123"))
}

func TestEmptyUIDIsNeverPrivileged(t *testing.T) {
	repo := &fakeAdminRepo{uids: []string{""}, found: true}
	uc := NewAdminUseCase(repo, "", 60*time.Second, newFixedClock(time.Unix(1000, 0)))

	assert.False(t, uc.IsPrivileged(context.Background(), ""))
	assert.Equal(t, 0, repo.readCount())
}

func TestEmptyDocumentIsCached(t *testing.T) {
	repo := &fakeAdminRepo{found: true}
	uc := NewAdminUseCase(repo, "abc123", 60*time.Second, newFixedClock(time.Unix(1000, 0)))
	ctx := context.Background()

	assert.Equal(t, []string{}, uc.AdminUIDs(ctx))
	assert.False(t, uc.IsPrivileged(ctx, "abc123"))
	assert.Equal(t, 1, repo.readCount())
}

func TestNewAdminUseCaseDefaultsTTL(t *testing.T) {
	uc := NewAdminUseCase(&fakeAdminRepo{}, "", 0, nil)
	assert.Equal(t, DefaultAdminCacheTTL, uc.ttl)
	assert.NotNil(t, uc.clock)
}

func TestIsFresh(t *testing.T) {
	fetched := time.Unix(1000, 0)
	ttl := 60 * time.Second

	assert.True(t, isFresh(fetched, fetched, ttl))
	assert.True(t, isFresh(fetched.Add(59*time.Second), fetched, ttl))
	assert.False(t, isFresh(fetched.Add(60*time.Second), fetched, ttl))
	assert.False(t, isFresh(fetched.Add(2*time.Minute), fetched, ttl))
}
