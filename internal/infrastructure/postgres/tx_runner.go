package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mnavarrov/erp-planta-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. El ledger depende de esto: stock y movimiento se
// confirman juntos o se revierten juntos.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := inventory.TxRepos{
		StockMateriaPrima: NewStockMateriaPrimaRepository(tx),
		StockProducto:     NewStockProductoRepository(tx),
		MovMateriaPrima:   NewMovimientoMateriaPrimaRepository(tx),
		MovProducto:       NewMovimientoProductoRepository(tx),
		Pedidos:           NewPedidoRepository(tx),
		OrdenesCompra:     NewOrdenCompraRepository(tx),
		OrdenesProduccion: NewOrdenProduccionRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
