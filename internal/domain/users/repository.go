package users

import "context"

type Repository interface {
	// Create devuelve ErrEmailTaken si el email ya existe.
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	// GetByEmail recibe el email ya normalizado (trim + minúsculas).
	GetByEmail(ctx context.Context, email string) (User, error)
}
