package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MateriaPrima representa un insumo de producción. El stock se almacena
// siempre en gramos, sin importar la unidad que se muestre en pantalla.
// StockActual solo se muta a través del ledger de inventario.
type MateriaPrima struct {
	ID          int64
	Nombre      string
	UnidadMedida string // etiqueta de presentación: "g", "kg", "unidad"
	StockActual decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // borrado lógico
}
