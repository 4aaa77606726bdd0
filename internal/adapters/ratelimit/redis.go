package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/godyclif/vet/internal/ports/ratelimit"
)

const keyPrefix = "vet:rl:"

// Redis usa ventana fija: INCR + EXPIRE NX (redis >= 7).
// Sirve con varias instancias detrás de un balanceador.
type Redis struct {
	client redis.Cmdable
}

func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Allow(ctx context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error) {
	k := keyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, window)
		ttl = p.PTTL(ctx, k)
		return nil
	})
	if err != nil {
		return ratelimit.Decision{}, fmt.Errorf("redis rate limit: %w", err)
	}

	count := int(incr.Val())
	if count > limit {
		retry := ttl.Val()
		if retry <= 0 {
			retry = window
		}
		return ratelimit.Decision{Allowed: false, RetryAfter: retry}, nil
	}
	return ratelimit.Decision{Allowed: true, Remaining: limit - count}, nil
}
