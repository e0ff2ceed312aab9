package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cotizacion es una cotización de proveedor: la lista de materias primas
// con cantidades y precios que luego respalda una orden de compra.
type Cotizacion struct {
	ID          int64
	ProveedorID int64
	Fecha       time.Time
	Total       decimal.Decimal
	Detalles    []DetalleCotizacion
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// DetalleCotizacion línea de cotización: materia prima, cantidad en gramos y precio.
type DetalleCotizacion struct {
	ID             int64
	CotizacionID   int64
	MateriaPrimaID int64
	Cantidad       decimal.Decimal // gramos
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
