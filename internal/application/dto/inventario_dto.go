package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// AjusteStockRequest body para POST /api/.../{id}/ajustes. Delta es la
// variación con signo: positiva entra, negativa sale.
type AjusteStockRequest struct {
	Delta  decimal.Decimal `json:"delta"`
	Tipo   string          `json:"tipo" validate:"omitempty,oneof=ENTRADA SALIDA PRODUCCION"`
	Motivo string          `json:"motivo" validate:"omitempty,max=300"`
}

// MovimientoResponse registro del ledger.
type MovimientoResponse struct {
	ID             int64           `json:"id"`
	Grupo          string          `json:"grupo"`
	ItemID         int64           `json:"item_id"`
	TipoMovimiento string          `json:"tipo_movimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Fecha          time.Time       `json:"fecha"`
	PedidoID       *int64          `json:"pedido_id,omitempty"`
	OrdenCompraID  *int64          `json:"orden_compra_id,omitempty"`
	Observacion    string          `json:"observacion,omitempty"`
	UsuarioID      *int64          `json:"usuario_id,omitempty"`
}

// MovimientoFromEntity convierte la entidad a respuesta.
func MovimientoFromEntity(m *entity.Movimiento) MovimientoResponse {
	return MovimientoResponse{
		ID:             m.ID,
		Grupo:          m.Grupo,
		ItemID:         m.ItemID,
		TipoMovimiento: m.TipoMovimiento,
		Cantidad:       m.Cantidad,
		Fecha:          m.Fecha,
		PedidoID:       m.PedidoID,
		OrdenCompraID:  m.OrdenCompraID,
		Observacion:    m.Observacion,
		UsuarioID:      m.UsuarioID,
	}
}

// MovimientosFromEntities convierte una lista de movimientos.
func MovimientosFromEntities(ms []*entity.Movimiento) []MovimientoResponse {
	out := make([]MovimientoResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, MovimientoFromEntity(m))
	}
	return out
}

// AjusteStockResponse resultado de un ajuste manual. CambioRealizado es
// false cuando el delta fue cero: el stock no cambió y no hay movimiento.
type AjusteStockResponse struct {
	StockActual     decimal.Decimal     `json:"stock_actual"`
	CambioRealizado bool                `json:"cambio_realizado"`
	Movimiento      *MovimientoResponse `json:"movimiento,omitempty"`
}
