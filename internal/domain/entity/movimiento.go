package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ergpos/inventario-api/internal/domain"
)

// TipoMovimiento es el tipo de un movimiento de inventario (conjunto cerrado).
type TipoMovimiento string

// Tipos de movimiento válidos.
const (
	TipoEntrada TipoMovimiento = "ENTRADA"
	TipoSalida  TipoMovimiento = "SALIDA"
)

// ParseTipoMovimiento valida y normaliza un tipo recibido como string.
// Falla rápido con INVALID_TIPO antes de tocar la base de datos.
func ParseTipoMovimiento(s string) (TipoMovimiento, error) {
	switch TipoMovimiento(strings.ToUpper(strings.TrimSpace(s))) {
	case TipoEntrada:
		return TipoEntrada, nil
	case TipoSalida:
		return TipoSalida, nil
	default:
		return "", domain.NewError(domain.CodeInvalidTipo, "tipo inválido. Debe ser ENTRADA o SALIDA")
	}
}

// EstadoMovimiento es el estado del ciclo de vida de un movimiento.
type EstadoMovimiento string

// Estados de movimiento válidos. ANULADO es terminal.
const (
	EstadoActivo    EstadoMovimiento = "ACTIVO"
	EstadoAnulado   EstadoMovimiento = "ANULADO"
	EstadoPendiente EstadoMovimiento = "PENDIENTE"
)

// ParseEstadoMovimiento valida y normaliza un estado recibido como string.
func ParseEstadoMovimiento(s string) (EstadoMovimiento, error) {
	switch EstadoMovimiento(strings.ToUpper(strings.TrimSpace(s))) {
	case EstadoActivo:
		return EstadoActivo, nil
	case EstadoAnulado:
		return EstadoAnulado, nil
	case EstadoPendiente:
		return EstadoPendiente, nil
	default:
		return "", domain.NewError(domain.CodeInvalidEstado, "estado inválido. Debe ser ACTIVO, ANULADO o PENDIENTE")
	}
}

// MovimientoInventario representa un evento que afecta el stock de un producto.
// Tipo y Cantidad son inmutables después de crearse; solo Estado transiciona.
// Nunca se borra físicamente: anular es una transición de estado.
type MovimientoInventario struct {
	ID            string
	ProductoID    string
	Tipo          TipoMovimiento
	Cantidad      int // siempre > 0; el signo lo da Tipo
	ProveedorID   *string
	UsuarioID     string
	Observacion   string
	DocumentoRef  string
	CostoUnitario *decimal.Decimal
	Fecha         time.Time // momento de efecto
	CreatedAt     time.Time
	Estado        EstadoMovimiento
}

// EsEntrada indica si el movimiento suma stock.
func (m *MovimientoInventario) EsEntrada() bool { return m.Tipo == TipoEntrada }

// EsSalida indica si el movimiento resta stock.
func (m *MovimientoInventario) EsSalida() bool { return m.Tipo == TipoSalida }

// PuedeAnular indica si el movimiento admite la transición a ANULADO.
func (m *MovimientoInventario) PuedeAnular() bool { return m.Estado == EstadoActivo }

// PuedeActivar indica si el movimiento admite la transición a ACTIVO.
func (m *MovimientoInventario) PuedeActivar() bool { return m.Estado == EstadoPendiente }

// EfectoStock devuelve el delta que el movimiento aplica al stock al activarse
// (+Cantidad para entradas, -Cantidad para salidas).
func (m *MovimientoInventario) EfectoStock() int {
	if m.EsEntrada() {
		return m.Cantidad
	}
	return -m.Cantidad
}

// CostoTotal calcula CostoUnitario * Cantidad; cero si no hay costo.
func (m *MovimientoInventario) CostoTotal() decimal.Decimal {
	if m.CostoUnitario == nil {
		return decimal.Zero
	}
	return m.CostoUnitario.Mul(decimal.NewFromInt(int64(m.Cantidad)))
}
