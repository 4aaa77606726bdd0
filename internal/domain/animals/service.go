package animals

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotFound             = errors.New("animal not found")
	ErrDuplicateCertificate = errors.New("certificate number already exists")
)

// maxCertificateAttempts acota los reintentos ante colisión del número de certificado.
const maxCertificateAttempts = 5

type Service struct {
	repo   Repository
	now    func() time.Time
	random io.Reader // nil = crypto/rand

	onCollision func()
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// OnCertificateCollision registra un callback (métricas) por cada colisión.
func (s *Service) OnCertificateCollision(fn func()) {
	s.onCollision = fn
}

type RegisterInput struct {
	Name        string
	Species     Species
	Breed       string
	DateOfBirth time.Time
	Weight      float64
	OwnerName   string
	OwnerEmail  string
	OwnerPhone  string
	ImageURL    string
	Notes       string
}

func (in RegisterInput) validate(now time.Time) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Breed) == "" {
		return ErrInvalidInput
	}
	if !in.Species.Valid() {
		return ErrInvalidInput
	}
	if in.DateOfBirth.IsZero() || in.DateOfBirth.After(now) {
		return ErrInvalidInput
	}
	if in.Weight <= 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.OwnerName) == "" || strings.TrimSpace(in.OwnerEmail) == "" || strings.TrimSpace(in.OwnerPhone) == "" {
		return ErrInvalidInput
	}
	return nil
}

// Register crea el animal con un número de certificado nuevo.
// Si el número ya existe (índice único) se genera otro.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Animal, error) {
	now := s.now()
	if err := in.validate(now); err != nil {
		return Animal{}, err
	}

	a := Animal{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		Species:          in.Species,
		Breed:            strings.TrimSpace(in.Breed),
		DateOfBirth:      in.DateOfBirth.UTC(),
		Weight:           in.Weight,
		OwnerName:        strings.TrimSpace(in.OwnerName),
		OwnerEmail:       strings.ToLower(strings.TrimSpace(in.OwnerEmail)),
		OwnerPhone:       strings.TrimSpace(in.OwnerPhone),
		RegistrationDate: now,
		ImageURL:         strings.TrimSpace(in.ImageURL),
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	for attempt := 1; attempt <= maxCertificateAttempts; attempt++ {
		cert, err := GenerateCertificateNumber(now, s.random)
		if err != nil {
			return Animal{}, err
		}
		a.CertificateNumber = cert

		err = s.repo.Create(ctx, a)
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, ErrDuplicateCertificate) {
			return Animal{}, err
		}
		if s.onCollision != nil {
			s.onCollision()
		}
	}
	return Animal{}, fmt.Errorf("register animal: %w after %d attempts", ErrDuplicateCertificate, maxCertificateAttempts)
}

// Import guarda un animal con certificado ya asignado (datos de ejemplo / migraciones).
func (s *Service) Import(ctx context.Context, a Animal) (Animal, error) {
	a.CertificateNumber = NormalizeCertificate(a.CertificateNumber)
	if a.CertificateNumber == "" || !a.Species.Valid() || strings.TrimSpace(a.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	now := s.now()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.RegistrationDate.IsZero() {
		a.RegistrationDate = now
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetByCertificate normaliza (trim + mayúsculas) antes de buscar.
func (s *Service) GetByCertificate(ctx context.Context, certificateNumber string) (Animal, error) {
	cert := NormalizeCertificate(certificateNumber)
	if cert == "" {
		return Animal{}, ErrInvalidInput
	}
	return s.repo.GetByCertificate(ctx, cert)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Weight   *float64
	Notes    *string
	ImageURL *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Weight != nil {
		if *in.Weight <= 0 {
			return Animal{}, ErrInvalidInput
		}
		a.Weight = *in.Weight
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.ImageURL != nil {
		a.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

// Delete se usa como compensación cuando falla la creación del reporte asociado.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
