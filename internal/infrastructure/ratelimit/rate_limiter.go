package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionSendMessage = "send_message"
	ActionLogin       = "login"
	ActionWatch       = "watch"
)

// Policy allows Burst actions at once and refills one token every Every.
type Policy struct {
	Burst int
	Every time.Duration
}

var DefaultPolicies = map[string]Policy{
	ActionSendMessage: {Burst: 10, Every: 6 * time.Second},
	ActionLogin:       {Burst: 5, Every: 12 * time.Second},
	ActionWatch:       {Burst: 30, Every: 2 * time.Second},
}

var fallbackPolicy = Policy{Burst: 20, Every: 3 * time.Second}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// allow takes one token at now. When none is available it reports how long
// until one is, without consuming anything.
func (b *bucket) allow(now time.Time) (bool, time.Duration) {
	b.lastSeen = now
	r := b.limiter.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Limiter keeps one token bucket per key and action.
type Limiter struct {
	policies map[string]Policy
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

func NewLimiter(policies map[string]Policy, now func() time.Time) *Limiter {
	if policies == nil {
		policies = DefaultPolicies
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		policies: policies,
		now:      now,
		buckets:  make(map[string]*bucket),
	}
}

// Allow consumes a token for key performing action. The duration is the
// wait until a retry can succeed.
func (l *Limiter) Allow(key, action string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	id := key + ":" + action
	b, ok := l.buckets[id]
	if !ok {
		policy, ok := l.policies[action]
		if !ok {
			policy = fallbackPolicy
		}
		b = &bucket{limiter: rate.NewLimiter(rate.Every(policy.Every), policy.Burst), lastSeen: now}
		l.buckets[id] = b
	}
	return b.allow(now)
}

// Cleanup drops buckets idle for longer than maxIdle.
func (l *Limiter) Cleanup(maxIdle time.Duration) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, b := range l.buckets {
		if now.Sub(b.lastSeen) > maxIdle {
			delete(l.buckets, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until stop is closed.
func (l *Limiter) StartCleanup(interval, maxIdle time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.Cleanup(maxIdle)
			case <-stop:
				return
			}
		}
	}()
}
