package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_FixedWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, _, err := s.Allow(ctx, "k", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	now = now.Add(20 * time.Second)
	ok, retry, err := s.Allow(ctx, "k", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 40, retry)

	ok, _, _ = s.Allow(ctx, "other", 2, time.Minute)
	assert.True(t, ok)

	now = now.Add(40 * time.Second)
	ok, _, _ = s.Allow(ctx, "k", 2, time.Minute)
	assert.True(t, ok)
}

type failingStore struct{}

func (failingStore) Allow(context.Context, string, int, time.Duration) (bool, int, error) {
	return false, 0, errors.New("redis down")
}

func TestMiddleware(t *testing.T) {
	newEcho := func(s Store) *echo.Echo {
		e := echo.New()
		p := Policy{Name: "delivery:send", Limit: 1, Window: time.Minute, Key: KeyIP("send")}
		e.POST("/send", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, Middleware(p, s))
		return e
	}
	call := func(e *echo.Echo) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/send", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	e := newEcho(NewMemoryStore())
	assert.Equal(t, http.StatusOK, call(e).Code)
	rec := call(e)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	e = newEcho(failingStore{})
	assert.Equal(t, http.StatusOK, call(e).Code)
	assert.Equal(t, http.StatusOK, call(e).Code)
}

func TestSource(t *testing.T) {
	assert.Equal(t, "ip", source("send:ip:10.0.0.1"))
	assert.Equal(t, "global", source("global"))
}
