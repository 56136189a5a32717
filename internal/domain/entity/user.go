package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Role         string // admin | viewer
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
