package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/godyclif/vet/internal/domain/animals"
)

type animalRepo struct {
	mu     sync.RWMutex
	byID   map[string]animals.Animal
	byCert map[string]string // certificado -> id (índice único)
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID:   make(map[string]animals.Animal),
		byCert: make(map[string]string),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	if _, taken := r.byCert[a.CertificateNumber]; taken {
		return animals.ErrDuplicateCertificate
	}
	r.byID[a.ID] = a
	r.byCert[a.CertificateNumber] = a.ID
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.byID[a.ID]
	if !exists {
		return animals.ErrNotFound
	}
	// El certificado no cambia nunca.
	a.CertificateNumber = prev.CertificateNumber
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil
	}
	delete(r.byCert, a.CertificateNumber)
	delete(r.byID, id)
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) GetByCertificate(ctx context.Context, cert string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCert[cert]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *animalRepo) List(ctx context.Context) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *animalRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]animals.Animal)
	r.byCert = make(map[string]string)
	return nil
}
