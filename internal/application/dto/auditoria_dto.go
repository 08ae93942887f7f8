package dto

import "time"

// AuditoriaResponse representación de un registro de auditoría en respuestas.
type AuditoriaResponse struct {
	ID          int64     `json:"id"`
	EventoTipo  string    `json:"evento_tipo"`
	TablaNombre string    `json:"tabla_nombre"`
	RegistroID  string    `json:"registro_id"`
	UsuarioID   *string   `json:"usuario_id,omitempty"`
	Detalle     string    `json:"detalle,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BuscarAuditoriaQuery filtros para GET /api/auditoria.
type BuscarAuditoriaQuery struct {
	Tabla     string `query:"tabla"`
	Evento    string `query:"evento"`
	UsuarioID string `query:"usuario_id"`
	Desde     string `query:"desde"` // RFC 3339
	Hasta     string `query:"hasta"`
}
