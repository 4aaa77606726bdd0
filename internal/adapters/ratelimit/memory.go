package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/godyclif/vet/internal/ports/ratelimit"
)

// Memory es un limitador de ventana deslizante en proceso (una sola instancia).
// Las claves sin hits vigentes se borran; una pasada completa corre como mucho
// una vez por ventana.
type Memory struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	hits   []time.Time
	window time.Duration
}

func NewMemory() *Memory {
	return &Memory{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string, limit int, window time.Duration) (ratelimit.Decision, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now, window)

	b := m.buckets[key]
	if b == nil {
		b = &bucket{}
	}
	b.window = window
	b.hits = prune(b.hits, now.Add(-window))

	if len(b.hits) >= limit {
		if len(b.hits) == 0 {
			delete(m.buckets, key)
			return ratelimit.Decision{Allowed: false}, nil
		}
		m.buckets[key] = b
		return ratelimit.Decision{Allowed: false, RetryAfter: b.hits[0].Add(window).Sub(now)}, nil
	}

	b.hits = append(b.hits, now)
	m.buckets[key] = b
	return ratelimit.Decision{Allowed: true, Remaining: limit - len(b.hits)}, nil
}

// sweep borra las claves cuyos hits ya vencieron.
func (m *Memory) sweep(now time.Time, every time.Duration) {
	if now.Sub(m.lastSweep) < every {
		return
	}
	m.lastSweep = now
	for key, b := range m.buckets {
		b.hits = prune(b.hits, now.Add(-b.window))
		if len(b.hits) == 0 {
			delete(m.buckets, key)
		}
	}
}

func (m *Memory) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// prune descarta los hits anteriores o iguales a cutoff (están ordenados).
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(hits); i++ {
		if hits[i].After(cutoff) {
			break
		}
	}
	return hits[i:]
}
