package medreports

import "context"

type Repository interface {
	Create(ctx context.Context, r MedReport) error
	// List devuelve todos, created_at desc.
	List(ctx context.Context) ([]MedReport, error)
	// ListByAnimal devuelve los reportes del animal, created_at desc.
	ListByAnimal(ctx context.Context, animalID string) ([]MedReport, error)
	DeleteAll(ctx context.Context) error
}
