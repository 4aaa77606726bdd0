package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/godyclif/vet/internal/domain/vaccines"
)

type vaccineRepo struct {
	mu    sync.RWMutex
	items []vaccines.Vaccine
}

func NewVaccineRepo() vaccines.Repository {
	return &vaccineRepo{}
}

func (r *vaccineRepo) Create(ctx context.Context, v vaccines.Vaccine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccine id required")
	}
	r.items = append(r.items, v)
	return nil
}

func (r *vaccineRepo) ListByAnimal(ctx context.Context, animalID string) ([]vaccines.Vaccine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccines.Vaccine, 0)
	for _, v := range r.items {
		if v.AnimalID == animalID {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateAdministered.After(out[j].DateAdministered)
	})
	return out, nil
}

func (r *vaccineRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = nil
	return nil
}
