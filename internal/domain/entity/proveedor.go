package entity

import "time"

// Proveedor representa un proveedor identificado por su RUC.
type Proveedor struct {
	ID        string
	Ruc       string // único, máx 20 caracteres
	Nombre    string
	Email     string
	Telefono  string
	Direccion string
	Activo    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
