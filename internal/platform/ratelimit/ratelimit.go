package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/corvusHold/leasedesk/internal/metrics"
)

// Policy defines a simple fixed-window rate limit.
// Limit requests within Window per derived key.
type Policy struct {
	// Name is a short identifier for the limited endpoint, used for logging/metrics (e.g. "delivery:send").
	Name   string
	Window time.Duration
	Limit  int
	// Key builds the bucket key for this request.
	Key func(echo.Context) string
}

// Store abstracts a counter store for fixed-window limiting.
type Store interface {
	// Allow increments the counter for the key in the given window and returns whether the request is allowed.
	// If not allowed, retryAfterSec indicates seconds until the window resets.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, retryAfterSec int, err error)
}

// Middleware enforces p against s. Store errors let the request through.
func Middleware(p Policy, s Store) echo.MiddlewareFunc {
	if p.Window <= 0 {
		p.Window = time.Minute
	}
	if p.Limit <= 0 {
		p.Limit = 60
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "global"
			if p.Key != nil {
				key = p.Key(c)
			}
			allowed, retryAfter, err := s.Allow(c.Request().Context(), key, p.Limit, p.Window)
			if err != nil {
				c.Logger().Warnf("rate limit store error: endpoint=%s err=%v", p.Name, err)
				return next(c)
			}
			if allowed {
				return next(c)
			}
			metrics.IncRateLimitExceeded(p.Name, source(key))
			c.Logger().Warnf("rate limit exceeded: endpoint=%s key=%s limit=%d window=%s retry_after=%ds", p.Name, key, p.Limit, p.Window, retryAfter)
			if retryAfter > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			}
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
		}
	}
}

// KeyIP buckets requests by client IP under prefix.
func KeyIP(prefix string) func(echo.Context) string {
	return func(c echo.Context) string {
		return prefix + ":ip:" + c.RealIP()
	}
}

func source(key string) string {
	if strings.Contains(key, ":ip:") {
		return "ip"
	}
	return "global"
}

// MemoryStore is a process-local Store. Use the Redis store when several
// instances serve the same landlords.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	start time.Time
	count int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*bucket), now: time.Now}
}

func (m *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.buckets[key]
	if !ok || now.Sub(b.start) >= window {
		m.buckets[key] = &bucket{start: now, count: 1}
		return true, 0, nil
	}
	if b.count < limit {
		b.count++
		return true, 0, nil
	}
	remaining := window - now.Sub(b.start)
	return false, int((remaining + time.Second - 1) / time.Second), nil
}
