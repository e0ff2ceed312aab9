package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto terminado vendible.
// PesoUnidad es el peso en gramos de una unidad: se usa para calcular el
// consumo de materia prima en producción. StockActual solo se muta a
// través del ledger de inventario.
type Producto struct {
	ID          int64
	Nombre      string
	Descripcion string
	PesoUnidad  decimal.Decimal // gramos por unidad
	Precio      decimal.Decimal
	StockActual decimal.Decimal // unidades
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
