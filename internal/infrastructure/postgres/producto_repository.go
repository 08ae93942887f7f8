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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, codigo, nombre, descripcion, categoria_id, precio,
	stock_minimo, stock_actual, unidad_medida, activo, created_at, updated_at`

// ProductoRepo implementación de ProductoRepository sobre PostgreSQL (usable
// con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(ctx context.Context, p *entity.Producto) error {
	query := `
		INSERT INTO productos (id, codigo, nombre, descripcion, categoria_id, precio,
			stock_minimo, stock_actual, unidad_medida, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.CategoriaID, p.Precio,
		p.StockMinimo, p.StockActual, p.UnidadMedida, p.Activo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.CodeDuplicate, "ya existe un producto con código %s", p.Codigo)
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(ctx context.Context, id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByCodigo obtiene un producto por código, sin lock.
func (r *ProductoRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1`
	return r.scanOne(ctx, query, codigo)
}

// GetByCodigoForUpdate obtiene el producto y bloquea la fila (SELECT FOR
// UPDATE). Bloquea hasta que la transacción que tenga el lock termine; el
// lock se libera al terminar la transacción envolvente.
func (r *ProductoRepo) GetByCodigoForUpdate(ctx context.Context, codigo string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE codigo = $1 FOR UPDATE`
	return r.scanOne(ctx, query, codigo)
}

// GetByIDForUpdate variante por ID de GetByCodigoForUpdate.
func (r *ProductoRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// Update actualiza los campos de catálogo de un producto. El stock no se toca
// aquí: solo UpdateStock, bajo el lock del motor.
func (r *ProductoRepo) Update(ctx context.Context, p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, categoria_id = $4, precio = $5,
			stock_minimo = $6, unidad_medida = $7, activo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Nombre, p.Descripcion, p.CategoriaID, p.Precio,
		p.StockMinimo, p.UnidadMedida, p.Activo, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock escribe el contador de stock. El motor ya validó el invariante
// bajo el lock; aquí solo se persiste.
func (r *ProductoRepo) UpdateStock(ctx context.Context, id string, stockActual int) error {
	query := `UPDATE productos SET stock_actual = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, stockActual)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List lista productos con paginación; soloActivos filtra desactivados.
func (r *ProductoRepo) List(ctx context.Context, soloActivos bool, limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY codigo LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

// ListStockBajo lista productos activos en o por debajo del umbral de alerta
// (stock mínimo configurado, con piso absoluto de 5 unidades).
func (r *ProductoRepo) ListStockBajo(ctx context.Context) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + `
		FROM productos
		WHERE activo AND stock_actual <= GREATEST(stock_minimo, 5)
		ORDER BY stock_actual`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stock bajo: %w", err)
	}
	defer rows.Close()
	return scanProductos(rows)
}

func (r *ProductoRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.CategoriaID, &p.Precio,
		&p.StockMinimo, &p.StockActual, &p.UnidadMedida, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

func scanProductos(rows pgx.Rows) ([]*entity.Producto, error) {
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.CategoriaID, &p.Precio,
			&p.StockMinimo, &p.StockActual, &p.UnidadMedida, &p.Activo, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
