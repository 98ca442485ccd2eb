package usecase

import (
	"context"
	"sync"
	"time"

	"talentflow/internal/domain/repository"
	"talentflow/pkg/logger"
)

const DefaultAdminCacheTTL = 60 * time.Second

type adminCache struct {
	uids      []string
	fetchedAt time.Time
	valid     bool
}

// isFresh reports whether a value fetched at fetchedAt may still be served at now.
func isFresh(now, fetchedAt time.Time, ttl time.Duration) bool {
	return now.Sub(fetchedAt) < ttl
}

// AdminUseCase resolves privileged identities from the config/admins
// allow-list. One instance is shared by the whole process so the cache is.
type AdminUseCase struct {
	adminRepo   repository.AdminRepository
	fallbackUID string
	ttl         time.Duration
	clock       Clock

	mu    sync.RWMutex
	cache adminCache
}

func NewAdminUseCase(adminRepo repository.AdminRepository, fallbackUID string, ttl time.Duration, clock Clock) *AdminUseCase {
	if ttl <= 0 {
		ttl = DefaultAdminCacheTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &AdminUseCase{
		adminRepo:   adminRepo,
		fallbackUID: fallbackUID,
		ttl:         ttl,
		clock:       clock,
	}
}

// AdminUIDs returns the allow-list, served from cache while fresh. When the
// document is missing the configured bootstrap UID stands in for it; on a
// read error the list is empty.
func (uc *AdminUseCase) AdminUIDs(ctx context.Context) []string {
	now := uc.clock.Now()

	uc.mu.RLock()
	cached := uc.cache
	uc.mu.RUnlock()
	if cached.valid && isFresh(now, cached.fetchedAt, uc.ttl) {
		return cached.uids
	}

	uids, found, err := uc.adminRepo.GetAdminUIDs(ctx)
	if err != nil {
		logger.Error("Error fetching admin UIDs from Firestore: %v", err)
		uc.mu.Lock()
		uc.cache = adminCache{}
		uc.mu.Unlock()
		return nil
	}

	if !found {
		uc.mu.Lock()
		uc.cache = adminCache{}
		uc.mu.Unlock()
		if uc.fallbackUID != "" {
			logger.Warn("Admin config document not found. Using fallback UID from environment to bootstrap the first admin.")
			return []string{uc.fallbackUID}
		}
		return nil
	}

	if uids == nil {
		uids = []string{}
	}
	uc.mu.Lock()
	uc.cache = adminCache{uids: uids, fetchedAt: now, valid: true}
	uc.mu.Unlock()

	return uids
}

func (uc *AdminUseCase) IsPrivileged(ctx context.Context, uid string) bool {
	if uid == "" {
		return false
	}
	for _, admin := range uc.AdminUIDs(ctx) {
		if admin == uid {
			return true
		}
	}
	return false
}
