package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto del catálogo con su contador de stock.
// StockActual nunca es negativo; solo se muta a través del motor de
// movimientos, bajo el lock exclusivo de la fila.
type Producto struct {
	ID           string
	Codigo       string // único
	Nombre       string
	Descripcion  string
	CategoriaID  *string
	Precio       decimal.Decimal
	StockMinimo  int
	StockActual  int
	UnidadMedida string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockBajo indica si el stock está en o por debajo del umbral de alerta:
// el stock mínimo configurado, o 5 unidades como piso absoluto.
func (p *Producto) StockBajo() bool {
	umbral := p.StockMinimo
	if umbral < 5 {
		umbral = 5
	}
	return p.StockActual <= umbral
}
