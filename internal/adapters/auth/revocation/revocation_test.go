package revocation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/ports/auth"
)

var (
	_ auth.RevocationList = (*Memory)(nil)
	_ auth.RevocationList = (*Redis)(nil)
)

func TestMemory_RevokeUntilExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Revoke(ctx, "jti-1", time.Hour))

	revoked, err := m.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = m.IsRevoked(ctx, "jti-2")
	assert.False(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, _ = m.IsRevoked(ctx, "jti-1")
	assert.False(t, revoked, "expired entries no longer count")

	// Revoke purga lo vencido
	require.NoError(t, m.Revoke(ctx, "jti-3", time.Minute))
	assert.Len(t, m.entries, 1)
}

func TestMemory_IgnoresEmptyAndNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Revoke(ctx, "", time.Hour))
	require.NoError(t, m.Revoke(ctx, "jti", 0))
	assert.Empty(t, m.entries)
}

// TEST_REDIS_URL=redis://localhost:6379/0 go test ./internal/adapters/auth/revocation/
func TestRedis_Integration(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	r := NewRedis(client)
	jti := uuid.NewString()

	revoked, err := r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, jti, time.Minute))
	revoked, err = r.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl, err := client.TTL(ctx, keyPrefix+jti).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
