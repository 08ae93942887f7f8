package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearProductoRequest body para POST /api/productos.
type CrearProductoRequest struct {
	Codigo          string          `json:"codigo" validate:"required,max=50"`
	Nombre          string          `json:"nombre" validate:"required,max=255"`
	Descripcion     string          `json:"descripcion,omitempty" validate:"omitempty,max=255"`
	CodigoCategoria string          `json:"codigo_categoria" validate:"required"`
	Precio          decimal.Decimal `json:"precio"`
	StockMinimo     int             `json:"stock_minimo" validate:"min=0"`
	StockInicial    int             `json:"stock_inicial" validate:"min=0"`
	UnidadMedida    string          `json:"unidad_medida,omitempty" validate:"omitempty,max=20"`
}

// ActualizarProductoRequest body para PUT /api/productos/:id. Campos nil no
// se modifican. El stock no se actualiza por aquí: solo vía movimientos.
type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre,omitempty"`
	Descripcion     *string          `json:"descripcion,omitempty"`
	CodigoCategoria *string          `json:"codigo_categoria,omitempty"`
	Precio          *decimal.Decimal `json:"precio,omitempty"`
	StockMinimo     *int             `json:"stock_minimo,omitempty"`
	UnidadMedida    *string          `json:"unidad_medida,omitempty"`
	Activo          *bool            `json:"activo,omitempty"`
}

// ProductoResponse representación de un producto en respuestas.
type ProductoResponse struct {
	ID           string          `json:"id"`
	Codigo       string          `json:"codigo"`
	Nombre       string          `json:"nombre"`
	Descripcion  string          `json:"descripcion,omitempty"`
	CategoriaID  *string         `json:"categoria_id,omitempty"`
	Precio       decimal.Decimal `json:"precio"`
	StockMinimo  int             `json:"stock_minimo"`
	StockActual  int             `json:"stock_actual"`
	UnidadMedida string          `json:"unidad_medida"`
	Activo       bool            `json:"activo"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// VerificacionStockResponse resultado de la consulta de disponibilidad.
// Es una lectura optimista sin lock: el motor re-valida bajo el lock al crear
// la salida, así que el resultado es solo informativo.
type VerificacionStockResponse struct {
	Codigo      string `json:"codigo"`
	StockActual int    `json:"stock_actual"`
	Solicitado  int    `json:"solicitado"`
	Disponible  bool   `json:"disponible"`
}
