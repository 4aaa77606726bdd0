package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/ports/ratelimit"
)

var (
	_ ratelimit.Limiter = (*Memory)(nil)
	_ ratelimit.Limiter = (*Redis)(nil)
)

func TestMemory_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		d, err := m.Allow(ctx, "ip", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
		now = now.Add(10 * time.Second)
	}

	d, err := m.Allow(ctx, "ip", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	// el primer hit fue hace 30s => libera en 30s
	assert.Equal(t, 30*time.Second, d.RetryAfter)

	// otra key no comparte bucket
	d, _ = m.Allow(ctx, "other", 3, time.Minute)
	assert.True(t, d.Allowed)

	now = now.Add(31 * time.Second)
	d, _ = m.Allow(ctx, "ip", 3, time.Minute)
	assert.True(t, d.Allowed)
}

func TestMemory_EvictsIdleKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		_, err := m.Allow(ctx, fmt.Sprintf("verify:10.0.%d.%d", i/256, i%256), 2, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 100, m.size())

	now = now.Add(2 * time.Minute)
	_, err := m.Allow(ctx, "verify:10.9.9.9", 2, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, m.size())
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string, int, time.Duration) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("down")
}

func TestPerIP_Middleware(t *testing.T) {
	var limited []string
	mw := PerIP(NewMemory(), Rule{Bucket: "verify", Limit: 2, Window: time.Minute}, logger.Nop(), func(b string) {
		limited = append(limited, b)
	})
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }))

	call := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1111").Code)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:2222").Code)

	rr := call("10.0.0.1:3333")
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Equal(t, []string{"verify"}, limited)

	// otra IP sigue pasando
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1111").Code)
}

func TestPerIP_IgnoresForwardedHeaders(t *testing.T) {
	h := PerIP(NewMemory(), Rule{Bucket: "verify", Limit: 2, Window: time.Minute}, logger.Nop(), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	codes := map[int]int{}
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/verify", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		codes[rr.Code]++
	}
	assert.Equal(t, map[int]int{http.StatusOK: 2, http.StatusTooManyRequests: 8}, codes)
}

func TestPerIP_FailsOpen(t *testing.T) {
	h := PerIP(failingLimiter{}, Rule{Bucket: "login", Limit: 1, Window: time.Minute}, logger.Nop(), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) }),
	)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestPerIP_DisabledWhenLimitZero(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	h := PerIP(NewMemory(), Rule{Bucket: "x", Limit: 0, Window: time.Minute}, logger.Nop(), nil)(next)
	assert.NotNil(t, h)
}

// TEST_REDIS_URL=redis://localhost:6379/0 go test ./internal/adapters/ratelimit/
func TestRedis_FixedWindow(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	l := NewRedis(client)
	key := "test:" + uuid.NewString()

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, key, 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := l.Allow(ctx, key, 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, time.Minute)
}
