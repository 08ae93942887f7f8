package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearMovimientoRequest body para POST /api/movimientos.
// Estado es opcional: vacío equivale a ACTIVO; PENDIENTE difiere el efecto
// de stock hasta activar.
type CrearMovimientoRequest struct {
	CodigoProducto string           `json:"codigo_producto" validate:"required"`
	Cantidad       int              `json:"cantidad" validate:"required,gt=0"`
	Tipo           string           `json:"tipo" validate:"required"`
	CodigoUsuario  string           `json:"codigo_usuario" validate:"required"`
	RucProveedor   string           `json:"ruc_proveedor,omitempty"`
	Observacion    string           `json:"observacion,omitempty" validate:"omitempty,max=255"`
	DocumentoRef   string           `json:"documento_ref,omitempty" validate:"omitempty,max=100"`
	CostoUnitario  *decimal.Decimal `json:"costo_unitario,omitempty"`
	Estado         string           `json:"estado,omitempty"`
}

// MovimientoResponse representación de un movimiento en respuestas.
type MovimientoResponse struct {
	ID            string           `json:"id"`
	ProductoID    string           `json:"producto_id"`
	Tipo          string           `json:"tipo"`
	Cantidad      int              `json:"cantidad"`
	ProveedorID   *string          `json:"proveedor_id,omitempty"`
	UsuarioID     string           `json:"usuario_id"`
	Observacion   string           `json:"observacion,omitempty"`
	DocumentoRef  string           `json:"documento_ref,omitempty"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario,omitempty"`
	Fecha         time.Time        `json:"fecha"`
	Estado        string           `json:"estado"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ListarMovimientosQuery filtros de búsqueda para GET /api/movimientos.
// Los filtros llegan como códigos de negocio y el caso de uso los resuelve a IDs.
type ListarMovimientosQuery struct {
	CodigoProducto string `query:"codigo_producto"`
	Tipo           string `query:"tipo"`
	Estado         string `query:"estado"`
	CodigoUsuario  string `query:"codigo_usuario"`
	RucProveedor   string `query:"ruc_proveedor"`
	Desde          string `query:"desde"` // RFC 3339
	Hasta          string `query:"hasta"`
	PageRequest
}

// ConsistenciaResponse resultado de la verificación contador-vs-libro de un producto.
type ConsistenciaResponse struct {
	ProductoID      string `json:"producto_id"`
	CodigoProducto  string `json:"codigo_producto"`
	StockActual     int    `json:"stock_actual"`
	SumaMovimientos int    `json:"suma_movimientos"`
	Consistente     bool   `json:"consistente"`
}
