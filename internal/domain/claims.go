package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

// Claims são as informações carregadas no token de acesso à API.
// O subject (sub) identifica o chamador.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
