package entity

import "time"

// Categoria agrupa productos del catálogo.
type Categoria struct {
	ID          string
	Codigo      string // único, case-insensitive
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
