package auth

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Claims representa la información extraída del token de sesión.
type Claims struct {
	UserID    string
	Email     string
	Role      Role
	TokenID   string // jti, para revocar en logout
	ExpiresAt time.Time
}

func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
