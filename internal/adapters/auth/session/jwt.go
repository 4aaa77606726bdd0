package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/godyclif/vet/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("session signer not configured")
	ErrInvalidToken  = errors.New("invalid session token")
	ErrTokenExpired  = errors.New("session token expired")
)

const issuer = "vet-clinic"

// tokenClaims es el payload del JWT: user_id, email, role + registrados (jti, exp, iat).
type tokenClaims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   auth.Role `json:"role"`
	jwt.RegisteredClaims
}

// Signer emite y valida tokens HS256. Implementa auth.TokenIssuer.
type Signer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{
		key: []byte(secret),
		ttl: ttl,
		now: time.Now,
	}
}

func (s *Signer) Issue(_ context.Context, c auth.Claims) (string, time.Time, error) {
	if s == nil || len(s.key) == 0 {
		return "", time.Time{}, ErrNotConfigured
	}
	if strings.TrimSpace(c.UserID) == "" {
		return "", time.Time{}, errors.New("session: user id is required")
	}

	now := s.now()
	exp := now.Add(s.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
		Role:   c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, err
	}
	// exp en el JWT va en segundos; devolvemos el mismo valor.
	return signed, exp.Truncate(time.Second), nil
}

// Parse valida firma, algoritmo y expiración. No consulta revocaciones.
func (s *Signer) Parse(token string) (auth.Claims, error) {
	if s == nil || len(s.key) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrTokenExpired
		}
		return auth.Claims{}, ErrInvalidToken
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	out := auth.Claims{
		UserID:  strings.TrimSpace(tc.UserID),
		Email:   tc.Email,
		Role:    tc.Role,
		TokenID: tc.ID,
	}
	if tc.ExpiresAt != nil {
		out.ExpiresAt = tc.ExpiresAt.Time
	}
	if out.UserID == "" || !out.Role.Valid() {
		return auth.Claims{}, ErrInvalidToken
	}
	return out, nil
}
