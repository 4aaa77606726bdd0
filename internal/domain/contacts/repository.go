package contacts

import "context"

type Repository interface {
	Create(ctx context.Context, c Contact) error
	Update(ctx context.Context, c Contact) error
	GetByID(ctx context.Context, id string) (Contact, error)
	// List filtra por status si no es vacío; más recientes primero.
	List(ctx context.Context, status Status) ([]Contact, error)
}
