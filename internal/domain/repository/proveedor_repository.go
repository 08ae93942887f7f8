package repository

import (
	"context"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// ProveedorRepository define el puerto de persistencia para Proveedor (DIP).
type ProveedorRepository interface {
	Create(ctx context.Context, proveedor *entity.Proveedor) error
	GetByID(ctx context.Context, id string) (*entity.Proveedor, error)
	GetByRuc(ctx context.Context, ruc string) (*entity.Proveedor, error)
	Update(ctx context.Context, proveedor *entity.Proveedor) error
	List(ctx context.Context, soloActivos bool, limit, offset int) ([]*entity.Proveedor, error)
}
