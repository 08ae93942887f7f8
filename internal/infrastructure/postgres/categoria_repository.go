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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

const categoriaColumns = `id, codigo, nombre, descripcion, activo, created_at, updated_at`

// CategoriaRepo implementación de CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador de persistencia para categorías.
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoriaRepo) Create(ctx context.Context, c *entity.Categoria) error {
	query := `
		INSERT INTO categorias (id, codigo, nombre, descripcion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Codigo, c.Nombre, c.Descripcion, c.Activo, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Errorf(domain.CodeDuplicate, "ya existe una categoría con código %s", c.Codigo)
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID; nil si no existe.
func (r *CategoriaRepo) GetByID(ctx context.Context, id string) (*entity.Categoria, error) {
	return r.scanOne(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE id = $1`, id)
}

// GetByCodigo busca por código sin distinguir mayúsculas.
func (r *CategoriaRepo) GetByCodigo(ctx context.Context, codigo string) (*entity.Categoria, error) {
	return r.scanOne(ctx, `SELECT `+categoriaColumns+` FROM categorias WHERE lower(codigo) = lower($1)`, codigo)
}

// Update actualiza una categoría.
func (r *CategoriaRepo) Update(ctx context.Context, c *entity.Categoria) error {
	query := `
		UPDATE categorias SET nombre = $2, descripcion = $3, activo = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, c.ID, c.Nombre, c.Descripcion, c.Activo, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// List lista categorías; soloActivas filtra desactivadas.
func (r *CategoriaRepo) List(ctx context.Context, soloActivas bool) ([]*entity.Categoria, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias`
	if soloActivas {
		query += ` WHERE activo`
	}
	query += ` ORDER BY codigo`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Codigo, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CategoriaRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.Codigo, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}
