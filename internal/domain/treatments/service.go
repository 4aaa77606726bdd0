package treatments

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
	Type         Type
	Description  string
	Date         *time.Time // nil = ahora
	Veterinarian string
	Cost         float64
	Notes        string
}

func (in RecordInput) validate() error {
	if !in.Type.Valid() {
		return ErrInvalidInput
	}
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Veterinarian) == "" {
		return ErrInvalidInput
	}
	if in.Cost < 0 || math.IsNaN(in.Cost) || math.IsInf(in.Cost, 0) {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Record(ctx context.Context, animalID string, in RecordInput) (Treatment, error) {
	if err := in.validate(); err != nil {
		return Treatment{}, err
	}
	if err := s.ensureAnimal(ctx, animalID); err != nil {
		return Treatment{}, err
	}

	now := s.now()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}

	t := Treatment{
		ID:           uuid.NewString(),
		AnimalID:     animalID,
		Type:         in.Type,
		Description:  strings.TrimSpace(in.Description),
		Date:         date,
		Veterinarian: strings.TrimSpace(in.Veterinarian),
		Cost:         in.Cost,
		Notes:        strings.TrimSpace(in.Notes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Treatment{}, err
	}
	return t, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Treatment, error) {
	if err := s.ensureAnimal(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID)
}

func (s *Service) DeleteAll(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

func (s *Service) ensureAnimal(ctx context.Context, animalID string) error {
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return ErrAnimalNotFound
		}
		return err
	}
	return nil
}
