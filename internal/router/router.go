package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/godyclif/vet/docs"
	"github.com/godyclif/vet/internal/adapters/auth/revocation"
	"github.com/godyclif/vet/internal/adapters/auth/session"
	rl "github.com/godyclif/vet/internal/adapters/ratelimit"
	"github.com/godyclif/vet/internal/adapters/storage"
	"github.com/godyclif/vet/internal/domain/animals"
	"github.com/godyclif/vet/internal/domain/contacts"
	"github.com/godyclif/vet/internal/domain/medreports"
	"github.com/godyclif/vet/internal/domain/treatments"
	"github.com/godyclif/vet/internal/domain/users"
	"github.com/godyclif/vet/internal/domain/vaccines"
	"github.com/godyclif/vet/internal/domain/verification"
	"github.com/godyclif/vet/internal/middleware"
	"github.com/godyclif/vet/internal/platform/config"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/metrics"
	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/ports/auth"
	"github.com/godyclif/vet/internal/ports/ratelimit"
)

type Options struct {
	Config  *config.Config        // nil = config.Defaults()
	Log     logger.Logger         // nil = Nop
	Metrics *metrics.Metrics      // nil = sin /metrics
	Repos   *storage.Repositories // nil = memoria

	// Opcionales: sin redis quedan en proceso.
	Limiter     ratelimit.Limiter
	Revocations auth.RevocationList
}

func NewRouter(opts Options) http.Handler {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	repos := opts.Repos
	if repos == nil {
		repos = storage.NewMemory()
	}
	revocations := opts.Revocations
	if revocations == nil {
		revocations = revocation.NewMemory()
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = rl.NewMemory()
	}
	m := opts.Metrics

	signer := session.NewSigner(cfg.Auth.SessionSecret, cfg.Auth.SessionTTL)
	verifier := session.NewVerifier(signer, revocations)
	svcs := NewServices(repos, signer, revocations, log, m)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if cfg.Server.TrustForwarded {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLog(log, m))
	r.Use(middleware.Recover(log))
	r.Use(middleware.AuthContext(verifier, svcs.Users, cfg.Auth.CookieName))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond.OK(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"storage": string(repos.Driver),
		})
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	guard := func(bucket string, limit int) func(http.Handler) http.Handler {
		if cfg.RateLimit.Disabled {
			return nil
		}
		return rl.PerIP(limiter, rl.Rule{Bucket: bucket, Limit: limit, Window: cfg.RateLimit.Window}, log, m.IncRateLimited)
	}

	// Rutas por módulo
	users.RegisterRoutes(r, svcs.Users, users.HandlerConfig{
		CookieName:    cfg.Auth.CookieName,
		SecureCookies: cfg.Auth.SecureCookies,
		Log:           log,
		OnLogin:       m.IncLogin,
		LoginGuard:    guard("login", cfg.RateLimit.LoginPerWindow),
	})
	animals.RegisterRoutes(r, svcs.Animals, log)
	medreports.RegisterRoutes(r, svcs.MedReports, log)
	treatments.RegisterRoutes(r, svcs.Treatments, log)
	vaccines.RegisterRoutes(r, svcs.Vaccines, log)
	// el formulario público comparte cupo con login
	contacts.RegisterRoutes(r, svcs.Contacts, log, guard("contact", cfg.RateLimit.LoginPerWindow))
	verification.RegisterRoutes(r, svcs.Verification, verification.HandlerConfig{
		Log:      log,
		Guard:    guard("verify", cfg.RateLimit.VerifyPerWindow),
		OnVerify: m.IncVerification,
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respond.Error(w, http.StatusNotFound, "Not found")
	})

	log.Info("router ready", map[string]any{
		"storage":    string(repos.Driver),
		"rate_limit": !cfg.RateLimit.Disabled,
	})
	return r
}
