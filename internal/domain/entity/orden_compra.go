package entity

import "time"

// Estados de orden de compra.
const (
	EstadoOCPendiente            = 1
	EstadoOCParcialmenteRecibido = 2
	EstadoOCRecibido             = 3
	EstadoOCCancelado            = 4
)

// NombreEstadoOC nombre legible de cada estado de orden de compra.
var NombreEstadoOC = map[int]string{
	EstadoOCPendiente:            "PENDIENTE",
	EstadoOCParcialmenteRecibido: "PARCIALMENTE_RECIBIDO",
	EstadoOCRecibido:             "RECIBIDO",
	EstadoOCCancelado:            "CANCELADO",
}

// OrdenCompra es una orden de compra a proveedor, respaldada por una cotización.
// Las líneas a recibir son las de la cotización origen.
type OrdenCompra struct {
	ID           int64
	CotizacionID int64
	EstadoID     int
	Fecha        time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
