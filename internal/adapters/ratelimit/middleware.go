package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/ports/ratelimit"
)

// Rule define un bucket por IP: Limit peticiones cada Window.
type Rule struct {
	Bucket string
	Limit  int
	Window time.Duration
}

// PerIP devuelve un middleware que limita por IP del cliente (RemoteAddr).
// Detrás de un proxy de confianza, montar antes middleware.RealIP; si no,
// X-Forwarded-For se ignora. Si el limitador falla se deja pasar.
// onLimited (opcional) recibe el bucket de cada rechazo.
func PerIP(l ratelimit.Limiter, rule Rule, log logger.Logger, onLimited func(bucket string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil || rule.Limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rule.Bucket + ":" + clientIP(r)

			d, err := l.Allow(r.Context(), key, rule.Limit, rule.Window)
			if err != nil {
				log.Warn("rate limiter unavailable", map[string]any{"bucket": rule.Bucket, "err": err})
				next.ServeHTTP(w, r)
				return
			}
			if !d.Allowed {
				if onLimited != nil {
					onLimited(rule.Bucket)
				}
				respond.TooManyRequests(w, d.RetryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
