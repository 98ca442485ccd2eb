package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/infrastructure/ratelimit"
	"talentflow/pkg/errors"
	"talentflow/pkg/logger"
	"talentflow/pkg/response"
)

type RateLimiter interface {
	Allow(key, action string) (bool, time.Duration)
}

type RateLimitMiddleware struct {
	limiter RateLimiter
}

func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// PerUser limits action per authenticated uid, falling back to the client IP.
// It must run after Authenticate.
func (m *RateLimitMiddleware) PerUser(action string) echo.MiddlewareFunc {
	return m.limit(action, func(c echo.Context) string {
		if uid, ok := c.Get("uid").(string); ok && uid != "" {
			return uid
		}
		return c.RealIP()
	})
}

// PerIP limits action per client IP, for routes without a user yet.
func (m *RateLimitMiddleware) PerIP(action string) echo.MiddlewareFunc {
	return m.limit(action, func(c echo.Context) string {
		return c.RealIP()
	})
}

func (m *RateLimitMiddleware) limit(action string, keyOf func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := keyOf(c)
			allowed, wait := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("RATE LIMIT: %s blocked for %s (retry in %v)", action, key, wait)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(wait.Round(time.Second).Seconds())))
				return response.Error(c, errors.RateLimited("Too many requests. Please slow down."))
			}
			return next(c)
		}
	}
}

var _ RateLimiter = (*ratelimit.Limiter)(nil)
