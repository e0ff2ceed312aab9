package inventory

import (
	"context"

	"github.com/mnavarrov/erp-planta-api/internal/domain"
	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Todo lo que se haga con ellos dentro de TxRunner.Run se confirma o
// revierte en bloque.
type TxRepos struct {
	StockMateriaPrima repository.StockRepository
	StockProducto     repository.StockRepository
	MovMateriaPrima   repository.MovimientoRepository
	MovProducto       repository.MovimientoRepository
	Pedidos           repository.PedidoRepository
	OrdenesCompra     repository.OrdenCompraRepository
	OrdenesProduccion repository.OrdenProduccionRepository
}

// PorTipo devuelve el par (stock, movimientos) de la variante indicada.
func (r TxRepos) PorTipo(t entity.TipoItem) (repository.StockRepository, repository.MovimientoRepository, error) {
	switch t {
	case entity.TipoItemMateriaPrima:
		return r.StockMateriaPrima, r.MovMateriaPrima, nil
	case entity.TipoItemProducto:
		return r.StockProducto, r.MovProducto, nil
	}
	return nil, nil, domain.ErrEntradaInvalida
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del ledger:
// actualización de stock y movimiento se ven juntos o no se ven.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
