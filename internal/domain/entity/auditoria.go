package entity

import "time"

// Tipos de evento de auditoría.
const (
	EventoInsert = "INSERT"
	EventoUpdate = "UPDATE"
	EventoDelete = "DELETE"
)

// RegistroAuditoria es una entrada append-only del rastro de auditoría.
// Se escribe dentro de la misma transacción que la mutación que describe.
type RegistroAuditoria struct {
	ID          int64
	EventoTipo  string
	TablaNombre string
	RegistroID  string
	UsuarioID   *string
	Detalle     string // JSON
	CreatedAt   time.Time
}
