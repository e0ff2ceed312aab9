package entity

import "github.com/shopspring/decimal"

// TipoItem distingue las dos variantes de ítem con stock del ledger.
type TipoItem string

const (
	TipoItemMateriaPrima TipoItem = "materia_prima"
	TipoItemProducto     TipoItem = "producto"
)

// ItemStock es la vista mínima de un ítem con stock que usa el ledger:
// identidad, nombre para mensajes de error y cantidad actual.
// La fila subyacente vive en materias_primas o productos según TipoItem.
type ItemStock struct {
	ID          int64
	Nombre      string
	StockActual decimal.Decimal
}
