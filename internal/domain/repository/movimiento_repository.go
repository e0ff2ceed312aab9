package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// MovimientoRepository es el puerto de persistencia del ledger append-only.
// Existe una instancia por variante (movimientos de materia prima y de producto).
type MovimientoRepository interface {
	Create(m *entity.Movimiento) error
	// SumPorOrdenCompra suma las cantidades de un tipo de movimiento de un ítem
	// ligadas a una orden de compra (para calcular lo pendiente por recibir).
	SumPorOrdenCompra(itemID, ordenCompraID int64, tipo string) (decimal.Decimal, error)
	ListByItem(itemID int64, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error)
}
