package repository

import (
	"context"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
//
// GetByCodigoForUpdate y GetByIDForUpdate adquieren el lock exclusivo de la
// fila (SELECT ... FOR UPDATE): bloquean hasta que la transacción que lo tenga
// haga Commit o Rollback, y el lock vive hasta el fin de la transacción
// envolvente. Fuera de una transacción no tienen sentido.
type ProductoRepository interface {
	Create(ctx context.Context, producto *entity.Producto) error
	GetByID(ctx context.Context, id string) (*entity.Producto, error)
	GetByCodigo(ctx context.Context, codigo string) (*entity.Producto, error)
	GetByCodigoForUpdate(ctx context.Context, codigo string) (*entity.Producto, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Producto, error)
	Update(ctx context.Context, producto *entity.Producto) error
	// UpdateStock escribe el contador de stock. No re-valida el invariante:
	// eso es responsabilidad del motor, bajo el lock.
	UpdateStock(ctx context.Context, id string, stockActual int) error
	List(ctx context.Context, soloActivos bool, limit, offset int) ([]*entity.Producto, error)
	ListStockBajo(ctx context.Context) ([]*entity.Producto, error)
}
