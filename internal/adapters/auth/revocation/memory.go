package revocation

import (
	"context"
	"sync"
	"time"
)

// Memory guarda jti revocados en proceso. Las entradas vencidas se
// purgan al consultar y en cada Revoke.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> expira
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (m *Memory) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, exp := range m.entries {
		if !exp.After(now) {
			delete(m.entries, id)
		}
	}
	m.entries[tokenID] = now.Add(ttl)
	return nil
}

func (m *Memory) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	m.mu.RLock()
	exp, ok := m.entries[tokenID]
	m.mu.RUnlock()
	return ok && exp.After(m.now()), nil
}
