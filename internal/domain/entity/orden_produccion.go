package entity

import "time"

// Estados de orden de producción.
const (
	EstadoProduccionEnProceso  = "EN PROCESO"
	EstadoProduccionFinalizada = "FINALIZADA"
)

// OrdenProduccion es una corrida de producción originada en un pedido de cliente.
// FechaFin queda en NULL hasta que la orden se finaliza.
type OrdenProduccion struct {
	ID          int64
	PedidoID    int64
	OperarioID  int64
	FechaInicio time.Time
	FechaFin    *time.Time
	Estado      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
