package medreports

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/godyclif/vet/internal/domain/animals"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("admin access required")
)

type Service struct {
	repo    Repository
	animals *animals.Service
	now     func() time.Time

	// onIssued se llama una vez por reporte emitido (métricas).
	onIssued func()
}

func NewService(repo Repository, animalsSvc *animals.Service) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		now:     time.Now,
	}
}

func (s *Service) OnIssued(fn func()) {
	s.onIssued = fn
}

// IssueInput trae los datos del animal nuevo más los de la consulta.
type IssueInput struct {
	Animal animals.RegisterInput

	ReportType    ReportType
	Diagnosis     string
	Symptoms      string
	Treatment     string
	Prescriptions string
	Veterinarian  string
	Price         *float64
	FollowUpDate  *time.Time
	Notes         string
}

func (in IssueInput) validate() error {
	if !in.ReportType.Valid() {
		return ErrInvalidInput
	}
	for _, v := range []string{in.Diagnosis, in.Symptoms, in.Treatment, in.Veterinarian} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidInput
		}
	}
	if in.Price != nil && (*in.Price < 0 || math.IsNaN(*in.Price) || math.IsInf(*in.Price, 0)) {
		return ErrInvalidInput
	}
	return nil
}

// Issued es el resultado de emitir un reporte: el animal con su certificado y el reporte.
type Issued struct {
	Animal animals.Animal
	Report MedReport
}

// Issue registra el animal (certificado nuevo) y luego el reporte.
// Si el insert del reporte falla se borra el animal para no dejar un certificado huérfano.
func (s *Service) Issue(ctx context.Context, createdBy string, isAdmin bool, in IssueInput) (Issued, error) {
	if !isAdmin || strings.TrimSpace(createdBy) == "" {
		return Issued{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return Issued{}, err
	}

	a, err := s.animals.Register(ctx, in.Animal)
	if err != nil {
		if errors.Is(err, animals.ErrInvalidInput) {
			return Issued{}, ErrInvalidInput
		}
		return Issued{}, err
	}

	now := s.now()
	rep := MedReport{
		ID:            uuid.NewString(),
		AnimalID:      a.ID,
		ReportType:    in.ReportType,
		Diagnosis:     strings.TrimSpace(in.Diagnosis),
		Symptoms:      strings.TrimSpace(in.Symptoms),
		Treatment:     strings.TrimSpace(in.Treatment),
		Prescriptions: strings.TrimSpace(in.Prescriptions),
		Veterinarian:  strings.TrimSpace(in.Veterinarian),
		Price:         in.Price,
		FollowUpDate:  in.FollowUpDate,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		if delErr := s.animals.Delete(ctx, a.ID); delErr != nil {
			return Issued{}, fmt.Errorf("create report: %w (rollback animal %s: %v)", err, a.ID, delErr)
		}
		return Issued{}, fmt.Errorf("create report: %w", err)
	}

	if s.onIssued != nil {
		s.onIssued()
	}
	return Issued{Animal: a, Report: rep}, nil
}

// Import guarda un reporte de un animal existente (datos de ejemplo).
func (s *Service) Import(ctx context.Context, r MedReport) (MedReport, error) {
	if strings.TrimSpace(r.AnimalID) == "" || !r.ReportType.Valid() {
		return MedReport{}, ErrInvalidInput
	}
	now := s.now()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
	if err := s.repo.Create(ctx, r); err != nil {
		return MedReport{}, err
	}
	return r, nil
}

// AnimalSummary es lo que el listado muestra del animal de cada reporte.
type AnimalSummary struct {
	ID                string
	Name              string
	Species           animals.Species
	CertificateNumber string
}

type ListItem struct {
	Report MedReport
	// Animal es nil si el animal ya no existe.
	Animal *AnimalSummary
}

// List devuelve todos los reportes (más recientes primero) con el resumen de su animal.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	cache := map[string]*AnimalSummary{}
	out := make([]ListItem, 0, len(reports))
	for _, r := range reports {
		sum, seen := cache[r.AnimalID]
		if !seen {
			a, err := s.animals.GetByID(ctx, r.AnimalID)
			switch {
			case err == nil:
				sum = &AnimalSummary{
					ID:                a.ID,
					Name:              a.Name,
					Species:           a.Species,
					CertificateNumber: a.CertificateNumber,
				}
			case errors.Is(err, animals.ErrNotFound):
				sum = nil
			default:
				return nil, err
			}
			cache[r.AnimalID] = sum
		}
		out = append(out, ListItem{Report: r, Animal: sum})
	}
	return out, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]MedReport, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
