package users

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/godyclif/vet/internal/middleware"
	"github.com/godyclif/vet/internal/platform/logger"
	"github.com/godyclif/vet/internal/platform/respond"
	"github.com/godyclif/vet/internal/platform/validate"
)

// HandlerConfig agrupa lo que los handlers de sesión necesitan además del servicio.
type HandlerConfig struct {
	CookieName    string
	SecureCookies bool
	Log           logger.Logger
	// OnLogin recibe "ok", "invalid" o "error". Opcional.
	OnLogin func(outcome string)
	// LoginGuard se aplica a signup y login (rate limit). Opcional.
	LoginGuard func(http.Handler) http.Handler
}

func RegisterRoutes(r chi.Router, svc *Service, cfg HandlerConfig) {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	guard := cfg.LoginGuard
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	r.Route("/api/auth", func(ar chi.Router) {
		ar.With(guard).Post("/signup", signupHandler(svc, cfg))
		ar.With(guard).Post("/login", loginHandler(svc, cfg))
		ar.Get("/me", meHandler(svc, cfg))
		ar.Post("/logout", logoutHandler(svc, cfg))
	})
}

type signupRequest struct {
	Name     string `json:"name" valid:"required~Name must be at least 2 characters,stringlength(2|100)~Name must be at least 2 characters"`
	Email    string `json:"email" valid:"required~Invalid email address,email~Invalid email address"`
	Password string `json:"password" valid:"required~Password must be at least 8 characters,stringlength(8|72)~Password must be at least 8 characters"`
}

type loginRequest struct {
	Email    string `json:"email" valid:"required~Invalid email address,email~Invalid email address"`
	Password string `json:"password" valid:"required~Password is required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// signupHandler godoc
// @Summary Crear cuenta
// @Description Crea una cuenta con rol user, setea la cookie de sesión y devuelve el token.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Datos de la cuenta"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any "Validation failed / Email already registered"
// @Failure 429 {object} map[string]any
// @Router /api/auth/signup [post]
func signupHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		req.Email = validate.NormalizeEmail(req.Email)
		if errs := validate.Struct(req); len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		u, sess, err := svc.Signup(r.Context(), SignupInput{Name: req.Name, Email: req.Email, Password: req.Password})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				respond.Error(w, http.StatusBadRequest, "Email already registered")
			case errors.Is(err, ErrInvalidInput):
				respond.Error(w, http.StatusBadRequest, "Validation failed")
			default:
				cfg.Log.Error("signup failed", map[string]any{"err": err})
				respond.Error(w, http.StatusInternalServerError, "Failed to create account")
			}
			return
		}

		setSessionCookie(w, cfg, sess)
		cfg.Log.Info("account created", map[string]any{"user_id": u.ID})
		respond.OK(w, http.StatusCreated, map[string]any{
			"message": "Account created successfully",
			"user":    toUserResponse(u),
			"token":   sess.Token,
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida credenciales. Mismo mensaje para email desconocido y contraseña incorrecta.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 401 {object} map[string]any "Invalid email or password"
// @Failure 429 {object} map[string]any
// @Router /api/auth/login [post]
func loginHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !respond.DecodeJSON(w, r, &req) {
			return
		}
		req.Email = validate.NormalizeEmail(req.Email)
		if errs := validate.Struct(req); len(errs) > 0 {
			respond.Invalid(w, errs)
			return
		}

		u, sess, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				observeLogin(cfg, "invalid")
				respond.Error(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			observeLogin(cfg, "error")
			cfg.Log.Error("login failed", map[string]any{"err": err})
			respond.Error(w, http.StatusInternalServerError, "Failed to login")
			return
		}

		observeLogin(cfg, "ok")
		setSessionCookie(w, cfg, sess)
		respond.OK(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"user":    toUserResponse(u),
			"token":   sess.Token,
		})
	}
}

func meHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := middleware.GetClaims(r.Context())
		if !ok {
			respond.JSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"message": "Not authenticated",
				"user":    nil,
			})
			return
		}

		u, err := svc.Me(r.Context(), c.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.JSON(w, http.StatusUnauthorized, map[string]any{
					"success": false,
					"message": "Not authenticated",
					"user":    nil,
				})
				return
			}
			cfg.Log.Error("auth check failed", map[string]any{"err": err})
			respond.JSON(w, http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Failed to check authentication",
				"user":    nil,
			})
			return
		}
		respond.OK(w, http.StatusOK, map[string]any{"user": toUserResponse(u)})
	}
}

func logoutHandler(svc *Service, cfg HandlerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, ok := middleware.GetClaims(r.Context()); ok {
			if err := svc.Logout(r.Context(), c); err != nil {
				// La cookie se borra igual; el token vence solo.
				cfg.Log.Warn("token revocation failed", map[string]any{"err": err, "user_id": c.UserID})
			}
		}
		clearSessionCookie(w, cfg)
		respond.OK(w, http.StatusOK, map[string]any{"message": "Logged out"})
	}
}

func setSessionCookie(w http.ResponseWriter, cfg HandlerConfig, sess Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   maxAge,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg HandlerConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func observeLogin(cfg HandlerConfig, outcome string) {
	if cfg.OnLogin != nil {
		cfg.OnLogin(outcome)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
