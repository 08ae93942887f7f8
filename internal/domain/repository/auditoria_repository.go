package repository

import (
	"context"
	"time"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// AuditoriaRepository define el puerto para el rastro de auditoría.
// Create se invoca dentro de la misma transacción que la mutación auditada:
// si falla, la mutación entera hace rollback.
type AuditoriaRepository interface {
	Create(ctx context.Context, registro *entity.RegistroAuditoria) error
	GetByID(ctx context.Context, id int64) (*entity.RegistroAuditoria, error)
	ListRecientes(ctx context.Context, limit int) ([]*entity.RegistroAuditoria, error)
	ListByTabla(ctx context.Context, tablaNombre string) ([]*entity.RegistroAuditoria, error)
	ListByEvento(ctx context.Context, eventoTipo string) ([]*entity.RegistroAuditoria, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.RegistroAuditoria, error)
	ListByFechas(ctx context.Context, desde, hasta time.Time) ([]*entity.RegistroAuditoria, error)
	ListByRegistro(ctx context.Context, tablaNombre, registroID string) ([]*entity.RegistroAuditoria, error)
	CountByEvento(ctx context.Context, eventoTipo string) (int64, error)
	DeleteAntiguos(ctx context.Context, fechaLimite time.Time) (int64, error)
}
