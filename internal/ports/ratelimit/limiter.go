package ratelimit

import (
	"context"
	"time"
)

// Decision es el resultado de consumir una unidad del bucket.
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter cuenta requests por key en ventanas fijas.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}
