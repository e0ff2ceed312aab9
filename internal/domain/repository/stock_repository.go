package repository

import (
	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
)

// StockRepository es el puerto del ledger hacia la fila de stock de un ítem
// (materia prima o producto según la implementación). Todas las lecturas
// honran el borrado lógico (deleted_at IS NULL).
type StockRepository interface {
	// Get lee el stock sin bloquear. Devuelve nil si el ítem no existe o está borrado.
	Get(id int64) (*entity.ItemStock, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE) dentro de la tx actual.
	GetForUpdate(id int64) (*entity.ItemStock, error)
	// UpdateStock escribe el nuevo stock_actual. Debe ejecutarse en la misma tx que el movimiento.
	UpdateStock(id int64, nuevo decimal.Decimal) error
}
