package contacts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/platform/validate"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("contact not found")
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

// Notifier recibe cada mensaje nuevo. El envío de emails queda fuera; el router conecta un logger.
type Notifier interface {
	ContactSubmitted(ctx context.Context, c Contact)
}

type Service struct {
	repo     Repository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		now:      time.Now,
	}
}

type SubmitInput struct {
	Name       string
	Email      string
	Phone      string
	Subject    string
	AnimalType string
	Message    string
}

func (in SubmitInput) validate() error {
	if len(strings.TrimSpace(in.Name)) < minNameLen {
		return ErrInvalidInput
	}
	if !validate.IsEmail(in.Email) {
		return ErrInvalidInput
	}
	if len(strings.TrimSpace(in.Message)) < minMessageLen {
		return ErrInvalidInput
	}
	if in.AnimalType != "" && !animals.Species(in.AnimalType).Valid() {
		return ErrInvalidInput
	}
	return nil
}

func (s *Service) Submit(ctx context.Context, in SubmitInput) (Contact, error) {
	if err := in.validate(); err != nil {
		return Contact{}, err
	}

	now := s.now()
	c := Contact{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Subject:    strings.TrimSpace(in.Subject),
		AnimalType: in.AnimalType,
		Message:    strings.TrimSpace(in.Message),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Contact{}, err
	}

	if s.notifier != nil {
		s.notifier.ContactSubmitted(ctx, c)
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, status Status) ([]Contact, error) {
	if status != "" && !status.Valid() {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, status)
}

func (s *Service) SetStatus(ctx context.Context, id string, status Status) (Contact, error) {
	if !status.Valid() {
		return Contact{}, ErrInvalidInput
	}
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Contact{}, err
	}
	if c.Status == status {
		return c, nil
	}
	c.Status = status
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Contact{}, err
	}
	return c, nil
}
