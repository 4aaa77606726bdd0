package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/godyclif/vet/internal/platform/validate"
	"github.com/godyclif/vet/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	minNameLen     = 2
	minPasswordLen = 8
	// bcrypt ignora lo que pase de 72 bytes; lo rechazamos antes.
	maxPasswordLen = 72
)

type Service struct {
	repo        Repository
	issuer      auth.TokenIssuer
	revocations auth.RevocationList
	now         func() time.Time
	hashCost    int
}

func NewService(repo Repository, issuer auth.TokenIssuer, revocations auth.RevocationList) *Service {
	return &Service{
		repo:        repo,
		issuer:      issuer,
		revocations: revocations,
		now:         time.Now,
		hashCost:    bcrypt.DefaultCost,
	}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
}

func (in SignupInput) validate() error {
	if len(strings.TrimSpace(in.Name)) < minNameLen {
		return ErrInvalidInput
	}
	if !validate.IsEmail(in.Email) {
		return ErrInvalidInput
	}
	if len(in.Password) < minPasswordLen || len(in.Password) > maxPasswordLen {
		return ErrInvalidInput
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup crea una cuenta con rol user y abre sesión.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, Session, error) {
	if err := in.validate(); err != nil {
		return User{}, Session{}, err
	}

	u, err := s.newUser(in, auth.RoleUser)
	if err != nil {
		return User{}, Session{}, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, Session{}, err
	}

	sess, err := s.issue(ctx, u)
	if err != nil {
		return User{}, Session{}, err
	}
	return u, sess, nil
}

// Login no distingue email desconocido de contraseña incorrecta.
func (s *Service) Login(ctx context.Context, email, password string) (User, Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return User{}, Session{}, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, Session{}, ErrInvalidCredentials
		}
		return User{}, Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, Session{}, ErrInvalidCredentials
	}

	sess, err := s.issue(ctx, u)
	if err != nil {
		return User{}, Session{}, err
	}
	return u, sess, nil
}

// Me resuelve el usuario de la sesión. Si fue borrado, la sesión ya no vale.
func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

// LookupSessionUser devuelve id, email y rol actuales del usuario.
func (s *Service) LookupSessionUser(ctx context.Context, userID string) (auth.Claims, error) {
	u, err := s.Me(ctx, userID)
	if err != nil {
		return auth.Claims{}, err
	}
	return auth.Claims{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// Logout revoca el jti hasta su vencimiento natural.
func (s *Service) Logout(ctx context.Context, c auth.Claims) error {
	if s.revocations == nil || c.TokenID == "" {
		return nil
	}
	ttl := c.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.revocations.Revoke(ctx, c.TokenID, ttl)
}

// EnsureAdmin crea la cuenta admin o promueve una existente.
// La contraseña solo se toca si la cuenta es nueva. created indica cuál de los dos casos fue.
func (s *Service) EnsureAdmin(ctx context.Context, in SignupInput) (u User, created bool, err error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case err == nil:
		if existing.IsAdmin() {
			return existing, false, nil
		}
		existing.Role = auth.RoleAdmin
		existing.UpdatedAt = s.now()
		if err := s.repo.Update(ctx, existing); err != nil {
			return User{}, false, err
		}
		return existing, false, nil
	case !errors.Is(err, ErrNotFound):
		return User{}, false, err
	}

	if err := in.validate(); err != nil {
		return User{}, false, err
	}
	u, err = s.newUser(in, auth.RoleAdmin)
	if err != nil {
		return User{}, false, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

func (s *Service) newUser(in SignupInput, role auth.Role) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return User{}, err
	}
	now := s.now()
	return User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *Service) issue(ctx context.Context, u User) (Session, error) {
	token, exp, err := s.issuer.Issue(ctx, auth.Claims{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp}, nil
}
