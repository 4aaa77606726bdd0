package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godyclif/vet/internal/adapters/auth/revocation"
	"github.com/godyclif/vet/internal/ports/auth"
)

var (
	_ auth.TokenIssuer  = (*Signer)(nil)
	_ auth.AuthVerifier = (*Verifier)(nil)
)

func newTestSigner(now *time.Time) *Signer {
	s := NewSigner("test-secret-test-secret-test-secret", 7*24*time.Hour)
	s.now = func() time.Time { return *now }
	return s
}

func TestSigner_IssueAndVerify(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestSigner(&now)
	v := NewVerifier(s, nil)

	tok, exp, err := s.Issue(ctx, auth.Claims{UserID: "u1", Email: "a@b.com", Role: auth.RoleAdmin})
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), exp, time.Second)

	c, err := v.Verify(ctx, "  "+tok+" ")
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, "a@b.com", c.Email)
	assert.True(t, c.IsAdmin())
	assert.NotEmpty(t, c.TokenID)
	assert.True(t, exp.Equal(c.ExpiresAt))

	// dos emisiones distintas => jti distintos
	tok2, _, err := s.Issue(ctx, auth.Claims{UserID: "u1", Role: auth.RoleAdmin})
	require.NoError(t, err)
	c2, err := v.Verify(ctx, tok2)
	require.NoError(t, err)
	assert.NotEqual(t, c.TokenID, c2.TokenID)
}

func TestSigner_Rejections(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestSigner(&now)
	v := NewVerifier(s, nil)

	tok, _, err := s.Issue(ctx, auth.Claims{UserID: "u1", Role: auth.RoleUser})
	require.NoError(t, err)

	_, err = v.Verify(ctx, "")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	// otra clave
	other := NewSigner("another-secret-another-secret-xx", time.Hour)
	_, err = NewVerifier(other, nil).Verify(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// alg none
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, tokenClaims{
		UserID: "u1", Role: auth.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Verify(ctx, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// vencido
	now = now.Add(8 * 24 * time.Hour)
	_, err = v.Verify(ctx, tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifier_Revoked(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTestSigner(&now)
	rl := revocation.NewMemory()
	v := NewVerifier(s, rl)

	tok, _, err := s.Issue(ctx, auth.Claims{UserID: "u1", Role: auth.RoleUser})
	require.NoError(t, err)

	c, err := v.Verify(ctx, tok)
	require.NoError(t, err)

	require.NoError(t, rl.Revoke(ctx, c.TokenID, time.Hour))
	_, err = v.Verify(ctx, tok)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
