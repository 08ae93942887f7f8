package repository

import (
	"context"
	"time"

	"github.com/ergpos/inventario-api/internal/domain/entity"
)

// FiltroMovimientos filtros para la búsqueda de movimientos. Los campos nil o
// vacíos no filtran.
type FiltroMovimientos struct {
	ProductoID  string
	Tipo        *entity.TipoMovimiento
	Estado      *entity.EstadoMovimiento
	UsuarioID   string
	ProveedorID string
	Desde       time.Time
	Hasta       time.Time
	Limit       int
	Offset      int
}

// MovimientoRepository define el puerto de persistencia para movimientos.
// Los movimientos nunca se borran; UpdateEstado es la única mutación.
type MovimientoRepository interface {
	Create(ctx context.Context, mov *entity.MovimientoInventario) error
	GetByID(ctx context.Context, id string) (*entity.MovimientoInventario, error)
	UpdateEstado(ctx context.Context, id string, estado entity.EstadoMovimiento) error
	Buscar(ctx context.Context, filtro FiltroMovimientos) ([]*entity.MovimientoInventario, error)
	// SumEfectosActivos suma los efectos (+entrada/-salida) de los movimientos
	// ACTIVOS de un producto. Solo lectura, usado por la verificación de
	// consistencia contador-vs-libro.
	SumEfectosActivos(ctx context.Context, productoID string) (int, error)
}
