package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godyclif/vet/internal/ports/auth"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenRevoked = errors.New("session token revoked")
)

// Verifier implementa auth.AuthVerifier: firma JWT + lista de revocados.
// revocations puede ser nil (sin logout server-side).
type Verifier struct {
	signer      *Signer
	revocations auth.RevocationList
}

func NewVerifier(signer *Signer, revocations auth.RevocationList) *Verifier {
	return &Verifier{signer: signer, revocations: revocations}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.signer == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	claims, err := v.signer.Parse(token)
	if err != nil {
		return auth.Claims{}, err
	}

	if v.revocations != nil && claims.TokenID != "" {
		revoked, err := v.revocations.IsRevoked(ctx, claims.TokenID)
		if err != nil {
			// El middleware trata cualquier error como anónimo.
			return auth.Claims{}, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return auth.Claims{}, ErrTokenRevoked
		}
	}
	return claims, nil
}
