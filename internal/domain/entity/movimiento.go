package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada    = "ENTRADA"
	MovimientoSalida     = "SALIDA"
	MovimientoProduccion = "PRODUCCION"
)

// Movimiento es un registro append-only del ledger: nunca se actualiza ni
// se borra. Cantidad siempre es la magnitud (positiva); el signo lo da
// TipoMovimiento (ENTRADA/PRODUCCION suman, SALIDA resta).
// La misma forma sirve para movimientos de materia prima y de producto;
// ItemID apunta a la tabla que corresponda según la variante.
type Movimiento struct {
	ID             int64
	Grupo          string // uuid que agrupa los movimientos de una misma operación
	ItemID         int64
	TipoMovimiento string
	Cantidad       decimal.Decimal
	Fecha          time.Time
	PedidoID       *int64 // pedido de cliente que originó el movimiento, si aplica
	OrdenCompraID  *int64 // orden de compra que originó el movimiento, si aplica
	Observacion    string
	UsuarioID      *int64
	CreatedAt      time.Time
}

// Signada devuelve la cantidad con signo según el tipo de movimiento.
func (m *Movimiento) Signada() decimal.Decimal {
	if m.TipoMovimiento == MovimientoSalida {
		return m.Cantidad.Neg()
	}
	return m.Cantidad
}
