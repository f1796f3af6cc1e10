package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// IsValidRole indica si role pertenece al conjunto cerrado de roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// User representa una identidad del sistema (empleado de la tienda).
// No se elimina físicamente: se desactiva con IsActive=false.
type User struct {
	ID             string
	Username       string // único
	PasswordHash   string // bcrypt
	FullName       string
	Role           string // admin, manager, cashier
	IsActive       bool
	TelegramChatID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
