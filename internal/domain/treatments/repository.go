package treatments

import "context"

type Repository interface {
	Create(ctx context.Context, t Treatment) error
	// ListByAnimal ordena por fecha del tratamiento, más reciente primero.
	ListByAnimal(ctx context.Context, animalID string) ([]Treatment, error)
	DeleteAll(ctx context.Context) error
}
