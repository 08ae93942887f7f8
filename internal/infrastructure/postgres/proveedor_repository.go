package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ergpos/inventario-api/internal/domain"
	"github.com/ergpos/inventario-api/internal/domain/entity"
	"github.com/ergpos/inventario-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, ruc, nombre, email, telefono, direccion, activo, created_at, updated_at`

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador de persistencia para proveedores.
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(ctx context.Context, p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (id, ruc, nombre, email, telefono, direccion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Ruc, p.Nombre, p.Email, p.Telefono, p.Direccion, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.CodeDuplicate, "ya existe un proveedor con RUC %s", p.Ruc)
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID; nil si no existe.
func (r *ProveedorRepo) GetByID(ctx context.Context, id string) (*entity.Proveedor, error) {
	return r.scanOne(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE id = $1`, id)
}

// GetByRuc obtiene un proveedor por RUC; nil si no existe.
func (r *ProveedorRepo) GetByRuc(ctx context.Context, ruc string) (*entity.Proveedor, error) {
	return r.scanOne(ctx, `SELECT `+proveedorColumns+` FROM proveedores WHERE ruc = $1`, ruc)
}

// Update actualiza un proveedor.
func (r *ProveedorRepo) Update(ctx context.Context, p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, email = $3, telefono = $4, direccion = $5,
			activo = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Email, p.Telefono, p.Direccion, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// List lista proveedores con paginación; soloActivos filtra desactivados.
func (r *ProveedorRepo) List(ctx context.Context, soloActivos bool, limit, offset int) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.Ruc, &p.Nombre, &p.Email, &p.Telefono, &p.Direccion, &p.Activo, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProveedorRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Ruc, &p.Nombre, &p.Email, &p.Telefono, &p.Direccion, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}
