package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// DetalleCotizacionRequest línea de cotización: materia prima, gramos y precio.
type DetalleCotizacionRequest struct {
	MateriaPrimaID int64           `json:"materia_prima_id" validate:"required,gt=0"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearCotizacionRequest body para POST /api/cotizaciones.
type CrearCotizacionRequest struct {
	ProveedorID int64                      `json:"proveedor_id" validate:"required,gt=0"`
	Detalles    []DetalleCotizacionRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleCotizacionResponse línea de cotización.
type DetalleCotizacionResponse struct {
	MateriaPrimaID int64           `json:"materia_prima_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// CotizacionResponse cotización con sus líneas.
type CotizacionResponse struct {
	ID          int64                       `json:"id"`
	ProveedorID int64                       `json:"proveedor_id"`
	Fecha       time.Time                   `json:"fecha"`
	Total       decimal.Decimal             `json:"total"`
	Detalles    []DetalleCotizacionResponse `json:"detalles"`
}

// CotizacionFromEntity convierte la entidad a respuesta.
func CotizacionFromEntity(c *entity.Cotizacion) CotizacionResponse {
	out := CotizacionResponse{
		ID:          c.ID,
		ProveedorID: c.ProveedorID,
		Fecha:       c.Fecha,
		Total:       c.Total,
	}
	for _, d := range c.Detalles {
		out.Detalles = append(out.Detalles, DetalleCotizacionResponse{
			MateriaPrimaID: d.MateriaPrimaID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}

// CrearOrdenCompraRequest body para POST /api/ordenes-compra.
type CrearOrdenCompraRequest struct {
	CotizacionID int64 `json:"cotizacion_id" validate:"required,gt=0"`
}

// ItemRecepcionRequest cantidad recibida de una materia prima en una
// recepción parcial.
type ItemRecepcionRequest struct {
	MateriaPrimaID int64           `json:"materia_prima_id" validate:"required,gt=0"`
	Cantidad       decimal.Decimal `json:"cantidad"`
}

// RecibirOrdenRequest body para PATCH /api/ordenes-compra/{id}/estado.
// Items solo aplica cuando el nuevo estado es PARCIALMENTE_RECIBIDO.
type RecibirOrdenRequest struct {
	EstadoID int                    `json:"estado_id" validate:"required,min=1,max=4"`
	Items    []ItemRecepcionRequest `json:"items" validate:"omitempty,dive"`
}

// OrdenCompraResponse orden de compra con el nombre del estado.
type OrdenCompraResponse struct {
	ID           int64     `json:"id"`
	CotizacionID int64     `json:"cotizacion_id"`
	EstadoID     int       `json:"estado_id"`
	Estado       string    `json:"estado"`
	Fecha        time.Time `json:"fecha"`
}

// OrdenCompraFromEntity convierte la entidad a respuesta.
func OrdenCompraFromEntity(oc *entity.OrdenCompra) OrdenCompraResponse {
	return OrdenCompraResponse{
		ID:           oc.ID,
		CotizacionID: oc.CotizacionID,
		EstadoID:     oc.EstadoID,
		Estado:       entity.NombreEstadoOC[oc.EstadoID],
		Fecha:        oc.Fecha,
	}
}

// RecepcionResponse resultado de una recepción: la orden actualizada, los
// movimientos de entrada registrados y cuántas líneas fallaron.
type RecepcionResponse struct {
	Orden          OrdenCompraResponse  `json:"orden"`
	Movimientos    []MovimientoResponse `json:"movimientos,omitempty"`
	LineasFallidas int                  `json:"lineas_fallidas"`
}
