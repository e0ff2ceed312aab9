package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// DetallePedidoRequest línea de pedido: producto y unidades.
type DetallePedidoRequest struct {
	ProductoID int64           `json:"producto_id" validate:"required,gt=0"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// CrearPedidoRequest body para POST /api/pedidos.
type CrearPedidoRequest struct {
	ClienteID int64                  `json:"cliente_id" validate:"required,gt=0"`
	Detalles  []DetallePedidoRequest `json:"detalles" validate:"required,min=1,dive"`
}

// CambiarEstadoPedidoRequest body para PATCH /api/pedidos/{id}/estado.
type CambiarEstadoPedidoRequest struct {
	EstadoID int `json:"estado_id" validate:"required,min=1,max=6"`
}

// DetallePedidoResponse línea de pedido.
type DetallePedidoResponse struct {
	ProductoID     int64           `json:"producto_id"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// PedidoResponse pedido con sus líneas y el nombre del estado.
type PedidoResponse struct {
	ID        int64                   `json:"id"`
	ClienteID int64                   `json:"cliente_id"`
	EstadoID  int                     `json:"estado_id"`
	Estado    string                  `json:"estado"`
	Fecha     time.Time               `json:"fecha"`
	Total     decimal.Decimal         `json:"total"`
	Detalles  []DetallePedidoResponse `json:"detalles"`
}

// PedidoFromEntity convierte la entidad a respuesta.
func PedidoFromEntity(p *entity.Pedido) PedidoResponse {
	out := PedidoResponse{
		ID:        p.ID,
		ClienteID: p.ClienteID,
		EstadoID:  p.EstadoID,
		Estado:    entity.NombreEstadoPedido[p.EstadoID],
		Fecha:     p.Fecha,
		Total:     p.Total,
	}
	for _, d := range p.Detalles {
		out.Detalles = append(out.Detalles, DetallePedidoResponse{
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal,
		})
	}
	return out
}

// CambioEstadoResponse pedido actualizado más los movimientos de stock
// generados por la transición (vacío salvo en la entrega).
type CambioEstadoResponse struct {
	Pedido      PedidoResponse       `json:"pedido"`
	Movimientos []MovimientoResponse `json:"movimientos,omitempty"`
}
