package vaccines

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/godyclif/vet/internal/domain/animals"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrAnimalNotFound = errors.New("animal not found")
)

type Service struct {
	repo    Repository
	animals *animals.Service
	now     func() time.Time
}

func NewService(repo Repository, animalsSvc *animals.Service) *Service {
	return &Service{
		repo:    repo,
		animals: animalsSvc,
		now:     time.Now,
	}
}

type RecordInput struct {
	Name             string
	DateAdministered *time.Time // nil = ahora
	NextDueDate      *time.Time // nil = aplicación + DefaultValidity
	Veterinarian     string
	BatchNumber      string
	Cost             float64
	Notes            string
}

func (s *Service) Record(ctx context.Context, animalID string, in RecordInput) (Vaccine, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Veterinarian) == "" {
		return Vaccine{}, ErrInvalidInput
	}
	if in.Cost < 0 || math.IsNaN(in.Cost) || math.IsInf(in.Cost, 0) {
		return Vaccine{}, ErrInvalidInput
	}

	now := s.now()
	administered := now
	if in.DateAdministered != nil {
		administered = in.DateAdministered.UTC()
	}
	nextDue := administered.Add(DefaultValidity)
	if in.NextDueDate != nil {
		nextDue = in.NextDueDate.UTC()
	}
	if nextDue.Before(administered) {
		return Vaccine{}, ErrInvalidInput
	}

	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return Vaccine{}, ErrAnimalNotFound
		}
		return Vaccine{}, err
	}

	v := Vaccine{
		ID:               uuid.NewString(),
		AnimalID:         animalID,
		Name:             strings.TrimSpace(in.Name),
		DateAdministered: administered,
		NextDueDate:      nextDue,
		Veterinarian:     strings.TrimSpace(in.Veterinarian),
		BatchNumber:      strings.TrimSpace(in.BatchNumber),
		Cost:             in.Cost,
		Notes:            strings.TrimSpace(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccine{}, err
	}
	return v, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Vaccine, error) {
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return nil, ErrAnimalNotFound
		}
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}
