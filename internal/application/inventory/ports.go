package inventory

import (
	"context"

	"github.com/ergpos/inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la unidad atómica del motor: la mutación
// de stock, el movimiento y la auditoría se confirman o revierten juntos.
// El lock de fila adquirido dentro de fn se libera al terminar la transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovimientoRepository,
		productoRepo repository.ProductoRepository,
		auditRepo repository.AuditoriaRepository,
	) error) error
}
