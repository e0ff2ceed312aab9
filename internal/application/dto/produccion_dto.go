package dto

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// CrearOrdenProduccionRequest body para POST /api/ordenes-produccion.
type CrearOrdenProduccionRequest struct {
	PedidoID int64 `json:"pedido_id" validate:"required,gt=0"`
}

// OrdenProduccionResponse orden de producción.
type OrdenProduccionResponse struct {
	ID          int64      `json:"id"`
	PedidoID    int64      `json:"pedido_id"`
	OperarioID  int64      `json:"operario_id"`
	FechaInicio time.Time  `json:"fecha_inicio"`
	FechaFin    *time.Time `json:"fecha_fin,omitempty"`
	Estado      string     `json:"estado"`
}

// OrdenProduccionFromEntity convierte la entidad a respuesta.
func OrdenProduccionFromEntity(op *entity.OrdenProduccion) OrdenProduccionResponse {
	return OrdenProduccionResponse{
		ID:          op.ID,
		PedidoID:    op.PedidoID,
		OperarioID:  op.OperarioID,
		FechaInicio: op.FechaInicio,
		FechaFin:    op.FechaFin,
		Estado:      op.Estado,
	}
}
