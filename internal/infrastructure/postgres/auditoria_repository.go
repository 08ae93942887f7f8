package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

const auditoriaColumns = `id, evento_tipo, tabla_nombre, registro_id, usuario_id, detalle, created_at`

// AuditoriaRepo implementación de AuditoriaRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only salvo la purga explícita.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste un registro de auditoría. El ID lo asigna la secuencia.
func (r *AuditoriaRepo) Create(ctx context.Context, a *entity.RegistroAuditoria) error {
	query := `
		INSERT INTO inventario_audit (evento_tipo, tabla_nombre, registro_id, usuario_id, detalle, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.EventoTipo, a.TablaNombre, a.RegistroID, a.UsuarioID, a.Detalle, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID; nil si no existe.
func (r *AuditoriaRepo) GetByID(ctx context.Context, id int64) (*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE id = $1`
	var a entity.RegistroAuditoria
	err := r.q.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.EventoTipo, &a.TablaNombre, &a.RegistroID, &a.UsuarioID, &a.Detalle, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get auditoria: %w", err)
	}
	return &a, nil
}

// ListRecientes lista los últimos registros.
func (r *AuditoriaRepo) ListRecientes(ctx context.Context, limit int) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// ListByTabla lista registros de una tabla.
func (r *AuditoriaRepo) ListByTabla(ctx context.Context, tablaNombre string) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE tabla_nombre = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, tablaNombre)
}

// ListByEvento lista registros de un tipo de evento.
func (r *AuditoriaRepo) ListByEvento(ctx context.Context, eventoTipo string) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE evento_tipo = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, eventoTipo)
}

// ListByUsuario lista registros de un usuario.
func (r *AuditoriaRepo) ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE usuario_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, usuarioID)
}

// ListByFechas lista registros en un rango de fechas.
func (r *AuditoriaRepo) ListByFechas(ctx context.Context, desde, hasta time.Time) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE created_at BETWEEN $1 AND $2 ORDER BY created_at DESC`
	return r.list(ctx, query, desde, hasta)
}

// ListByRegistro lista la traza de auditoría de un registro puntual.
func (r *AuditoriaRepo) ListByRegistro(ctx context.Context, tablaNombre, registroID string) ([]*entity.RegistroAuditoria, error) {
	query := `SELECT ` + auditoriaColumns + ` FROM inventario_audit WHERE tabla_nombre = $1 AND registro_id = $2 ORDER BY created_at`
	return r.list(ctx, query, tablaNombre, registroID)
}

// CountByEvento cuenta registros de un tipo de evento.
func (r *AuditoriaRepo) CountByEvento(ctx context.Context, eventoTipo string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM inventario_audit WHERE evento_tipo = $1`, eventoTipo).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count auditoria: %w", err)
	}
	return n, nil
}

// DeleteAntiguos purga registros anteriores a la fecha límite y devuelve
// cuántos se eliminaron.
func (r *AuditoriaRepo) DeleteAntiguos(ctx context.Context, fechaLimite time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventario_audit WHERE created_at < $1`, fechaLimite)
	if err != nil {
		return 0, fmt.Errorf("delete auditoria antiguos: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *AuditoriaRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RegistroAuditoria, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.RegistroAuditoria
	for rows.Next() {
		var a entity.RegistroAuditoria
		if err := rows.Scan(&a.ID, &a.EventoTipo, &a.TablaNombre, &a.RegistroID, &a.UsuarioID, &a.Detalle, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
