package users

import (
	"time"

	"github.com/godyclif/vet/internal/ports/auth"
)

// User es una cuenta del dashboard. PasswordHash nunca sale por la API.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// Session es el token emitido tras signup/login.
type Session struct {
	Token     string
	ExpiresAt time.Time
}
