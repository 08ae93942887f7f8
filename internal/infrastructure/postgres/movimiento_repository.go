package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumns = `id, producto_id, tipo, cantidad, proveedor_id, usuario_id,
	observacion, documento_ref, costo_unitario, fecha, created_at, estado`

// MovimientoRepo implementación de MovimientoRepository sobre PostgreSQL
// (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovimientoRepo) Create(ctx context.Context, m *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (id, producto_id, tipo, cantidad, proveedor_id,
			usuario_id, observacion, documento_ref, costo_unitario, fecha, created_at, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductoID, m.Tipo, m.Cantidad, m.ProveedorID,
		m.UsuarioID, m.Observacion, m.DocumentoRef, m.CostoUnitario, m.Fecha, m.CreatedAt, m.Estado,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID; nil si no existe.
func (r *MovimientoRepo) GetByID(ctx context.Context, id string) (*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE id = $1`
	var m entity.MovimientoInventario
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.ProveedorID, &m.UsuarioID,
		&m.Observacion, &m.DocumentoRef, &m.CostoUnitario, &m.Fecha, &m.CreatedAt, &m.Estado,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// UpdateEstado transiciona el estado de un movimiento. Única mutación
// permitida: tipo y cantidad son inmutables y las filas nunca se borran.
func (r *MovimientoRepo) UpdateEstado(ctx context.Context, id string, estado entity.EstadoMovimiento) error {
	query := `UPDATE movimientos_inventario SET estado = $2 WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, estado)
	if err != nil {
		return fmt.Errorf("update estado movimiento: %w", err)
	}
	return nil
}

// Buscar lista movimientos con filtros dinámicos y paginación.
func (r *MovimientoRepo) Buscar(ctx context.Context, f repository.FiltroMovimientos) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE fecha BETWEEN $1 AND $2`
	args := []any{f.Desde, f.Hasta}
	pos := 3
	if f.ProductoID != "" {
		query += fmt.Sprintf(" AND producto_id = $%d", pos)
		args = append(args, f.ProductoID)
		pos++
	}
	if f.Tipo != nil {
		query += fmt.Sprintf(" AND tipo = $%d", pos)
		args = append(args, *f.Tipo)
		pos++
	}
	if f.Estado != nil {
		query += fmt.Sprintf(" AND estado = $%d", pos)
		args = append(args, *f.Estado)
		pos++
	}
	if f.UsuarioID != "" {
		query += fmt.Sprintf(" AND usuario_id = $%d", pos)
		args = append(args, f.UsuarioID)
		pos++
	}
	if f.ProveedorID != "" {
		query += fmt.Sprintf(" AND proveedor_id = $%d", pos)
		args = append(args, f.ProveedorID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("buscar movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(
			&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.ProveedorID, &m.UsuarioID,
			&m.Observacion, &m.DocumentoRef, &m.CostoUnitario, &m.Fecha, &m.CreatedAt, &m.Estado,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SumEfectosActivos suma los efectos (+entrada/-salida) de los movimientos
// ACTIVOS de un producto.
func (r *MovimientoRepo) SumEfectosActivos(ctx context.Context, productoID string) (int, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN tipo = $2 THEN cantidad ELSE -cantidad END), 0)
		FROM movimientos_inventario
		WHERE producto_id = $1 AND estado = $3`
	var suma int
	err := r.q.QueryRow(ctx, query, productoID, entity.TipoEntrada, entity.EstadoActivo).Scan(&suma)
	if err != nil {
		return 0, fmt.Errorf("sum efectos activos: %w", err)
	}
	return suma, nil
}
