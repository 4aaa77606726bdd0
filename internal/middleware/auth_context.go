package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Busca el token en la cookie de sesión o en Authorization: Bearer.
// - Si verifier lo acepta, setea claims en el contexto.
// - Con users != nil, email y rol salen del usuario guardado; si ya no existe, anónimo.
// - Si no hay claims, el request sigue igual; RequireAuth/RequireAdmin deciden 401.
func AuthContext(verifier auth.AuthVerifier, users auth.UserLookup, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" && cookieName != "" {
				if c, err := r.Cookie(cookieName); err == nil {
					token = strings.TrimSpace(c.Value)
				}
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// Token vencido/revocado = anónimo. No cortamos aquí.
				next.ServeHTTP(w, r)
				return
			}
			if users != nil {
				current, err := users.LookupSessionUser(r.Context(), claims.UserID)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				claims.Email = current.Email
				claims.Role = current.Role
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	if !ok || strings.TrimSpace(c.UserID) == "" {
		return auth.Claims{}, false
	}
	return c, true
}

// WithClaims permite inyectar claims (tests y comandos internos).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// RequireAuth corta con 401 si no hay sesión válida.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin corta con 401 si no hay sesión de admin (mismo código que la app original).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok || !c.IsAdmin() {
			respond.Error(w, http.StatusUnauthorized, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
