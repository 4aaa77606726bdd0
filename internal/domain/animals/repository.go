package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Animal, error)
	GetByCertificate(ctx context.Context, certificateNumber string) (Animal, error)
	// List devuelve todos, más recientes primero (created_at desc).
	List(ctx context.Context) ([]Animal, error)
	DeleteAll(ctx context.Context) error
}
