package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido de cliente.
const (
	EstadoPedidoPendiente        = 1
	EstadoPedidoEnProceso        = 2
	EstadoPedidoListoParaEntrega = 3
	EstadoPedidoEnviado          = 4
	EstadoPedidoEntregado        = 5
	EstadoPedidoCancelado        = 6
)

// NombreEstadoPedido nombre legible de cada estado (mensajes de error y auditoría).
var NombreEstadoPedido = map[int]string{
	EstadoPedidoPendiente:        "PENDIENTE",
	EstadoPedidoEnProceso:        "EN_PROCESO",
	EstadoPedidoListoParaEntrega: "LISTO_PARA_ENTREGA",
	EstadoPedidoEnviado:          "ENVIADO",
	EstadoPedidoEntregado:        "ENTREGADO",
	EstadoPedidoCancelado:        "CANCELADO",
}

// Pedido es un pedido de cliente con sus líneas.
type Pedido struct {
	ID        int64
	ClienteID int64
	EstadoID  int
	Fecha     time.Time
	Total     decimal.Decimal
	Detalles  []DetallePedido
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// DetallePedido línea de un pedido: producto, cantidad en unidades y subtotal.
type DetallePedido struct {
	ID             int64
	PedidoID       int64
	ProductoID     int64
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}
