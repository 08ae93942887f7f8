package repository

import (
	"context"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// CategoriaRepository define el puerto de persistencia para Categoria (DIP).
type CategoriaRepository interface {
	Create(ctx context.Context, categoria *entity.Categoria) error
	GetByID(ctx context.Context, id string) (*entity.Categoria, error)
	// GetByCodigo busca por código sin distinguir mayúsculas.
	GetByCodigo(ctx context.Context, codigo string) (*entity.Categoria, error)
	Update(ctx context.Context, categoria *entity.Categoria) error
	List(ctx context.Context, soloActivas bool) ([]*entity.Categoria, error)
}
