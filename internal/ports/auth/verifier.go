package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens de sesión para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(ctx context.Context, c Claims) (token string, expiresAt time.Time, err error)
}

// UserLookup resuelve el usuario vigente de una sesión. El rol y el email
// devueltos reemplazan a los del token.
type UserLookup interface {
	LookupSessionUser(ctx context.Context, userID string) (Claims, error)
}

// RevocationList guarda los jti revocados hasta que expiran.
type RevocationList interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
