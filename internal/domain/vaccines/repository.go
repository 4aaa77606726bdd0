package vaccines

import "context"

type Repository interface {
	Create(ctx context.Context, v Vaccine) error
	// ListByAnimal ordena por fecha de aplicación, más reciente primero.
	ListByAnimal(ctx context.Context, animalID string) ([]Vaccine, error)
	DeleteAll(ctx context.Context) error
}
