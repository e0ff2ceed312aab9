package usecase

import (
	"time"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// MovimientosUseCase consultas de solo lectura sobre el ledger (historial
// de movimientos por ítem, con rango de fechas y paginación).
type MovimientosUseCase struct {
	movMateriaPrima repository.MovimientoRepository
	movProducto     repository.MovimientoRepository
}

// NewMovimientosUseCase construye el caso de uso.
func NewMovimientosUseCase(movMateriaPrima, movProducto repository.MovimientoRepository) *MovimientosUseCase {
	return &MovimientosUseCase{movMateriaPrima: movMateriaPrima, movProducto: movProducto}
}

// ListByItem lista los movimientos de un ítem de la variante indicada.
func (uc *MovimientosUseCase) ListByItem(tipo entity.TipoItem, itemID int64, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	if tipo == entity.TipoItemMateriaPrima {
		return uc.movMateriaPrima.ListByItem(itemID, desde, hasta, limit, offset)
	}
	return uc.movProducto.ListByItem(itemID, desde, hasta, limit, offset)
}
