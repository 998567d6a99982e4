package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleSeller = "vendedor"
)

// User es un usuario del back office.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
