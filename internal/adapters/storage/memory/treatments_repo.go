package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/godyclif/vet/internal/domain/treatments"
)

type treatmentRepo struct {
	mu    sync.RWMutex
	items []treatments.Treatment
}

func NewTreatmentRepo() treatments.Repository {
	return &treatmentRepo{}
}

func (r *treatmentRepo) Create(ctx context.Context, t treatments.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("treatment id required")
	}
	r.items = append(r.items, t)
	return nil
}

func (r *treatmentRepo) ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]treatments.Treatment, 0)
	for _, t := range r.items {
		if t.AnimalID == animalID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *treatmentRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	return nil
}
