package domain

import "strings"

// ID is used across domain entities.
type ID = int64

// Role is the role claim carried in the bearer token.
type Role string

const (
	RoleManager   Role = "Gestor"
	RoleAdmin     Role = "Administrador"
	RoleDriver    Role = "Motorista"
	RoleRequester Role = "Requisitante"
)

// ParseRole matches a role claim case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range []Role{RoleManager, RoleAdmin, RoleDriver, RoleRequester} {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}

// IsManager reports whether the role may manage trips of other users.
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleAdmin
}

// RequestContext carries the authenticated caller.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}
