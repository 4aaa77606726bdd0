package verification

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/vaccines"
)

var (
	ErrCertificateRequired = errors.New("certificate number is required")
	ErrNotFound            = errors.New("no records found for this certificate number")
)

type AnimalFinder interface {
	GetByCertificate(ctx context.Context, certificateNumber string) (animals.Animal, error)
}

type TreatmentLister interface {
	ListByAnimal(ctx context.Context, animalID string) ([]treatments.Treatment, error)
}

type VaccineLister interface {
	ListByAnimal(ctx context.Context, animalID string) ([]vaccines.Vaccine, error)
}

type ReportLister interface {
	ListByAnimal(ctx context.Context, animalID string) ([]medreports.MedReport, error)
}

type Service struct {
	animals    AnimalFinder
	treatments TreatmentLister
	vaccines   VaccineLister
	reports    ReportLister
	now        func() time.Time
}

func NewService(a AnimalFinder, t TreatmentLister, v VaccineLister, r ReportLister) *Service {
	return &Service{
		animals:    a,
		treatments: t,
		vaccines:   v,
		reports:    r,
		now:        time.Now,
	}
}

// Verify arma la ficha completa del animal. La búsqueda ignora mayúsculas y espacios.
func (s *Service) Verify(ctx context.Context, certificateNumber string) (Record, error) {
	if animals.NormalizeCertificate(certificateNumber) == "" {
		return Record{}, ErrCertificateRequired
	}

	a, err := s.animals.GetByCertificate(ctx, certificateNumber)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	ts, err := s.treatments.ListByAnimal(ctx, a.ID)
	if err != nil {
		return Record{}, err
	}
	vs, err := s.vaccines.ListByAnimal(ctx, a.ID)
	if err != nil {
		return Record{}, err
	}
	rs, err := s.reports.ListByAnimal(ctx, a.ID)
	if err != nil {
		return Record{}, err
	}

	// Los repos ya ordenan; se reordena para no depender del backend.
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Date.After(ts[j].Date) })
	sort.SliceStable(vs, func(i, j int) bool { return vs[i].DateAdministered.After(vs[j].DateAdministered) })
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].CreatedAt.After(rs[j].CreatedAt) })

	return Record{
		Animal:     a,
		Age:        a.AgeAt(s.now()),
		Treatments: ts,
		Vaccines:   vs,
		Reports:    rs,
		Costs:      sumCosts(ts, vs, rs),
	}, nil
}
