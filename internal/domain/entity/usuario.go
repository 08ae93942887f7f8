package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin     = "admin"
	RolBodeguero = "bodeguero"
	RolVendedor  = "vendedor"
)

// Usuario representa un usuario del sistema (actor de los movimientos).
type Usuario struct {
	ID           string
	Codigo       string // único, usado como referencia en movimientos
	Nombre       string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Rol          string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
