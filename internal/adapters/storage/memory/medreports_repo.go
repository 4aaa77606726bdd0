package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/godyclif/vet/internal/domain/medreports"
)

type medReportRepo struct {
	mu   sync.RWMutex
	byID map[string]medreports.MedReport
}

func NewMedReportRepo() medreports.Repository {
	return &medReportRepo{
		byID: make(map[string]medreports.MedReport),
	}
}

func (r *medReportRepo) Create(ctx context.Context, m medreports.MedReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("report id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("report already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *medReportRepo) List(ctx context.Context) ([]medreports.MedReport, error) {
	return r.filter(func(medreports.MedReport) bool { return true }), nil
}

func (r *medReportRepo) ListByAnimal(ctx context.Context, animalID string) ([]medreports.MedReport, error) {
	return r.filter(func(m medreports.MedReport) bool { return m.AnimalID == animalID }), nil
}

func (r *medReportRepo) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID = make(map[string]medreports.MedReport)
	return nil
}

func (r *medReportRepo) filter(keep func(medreports.MedReport) bool) []medreports.MedReport {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medreports.MedReport, 0)
	for _, m := range r.byID {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
