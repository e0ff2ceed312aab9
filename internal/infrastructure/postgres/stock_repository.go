package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). La misma implementación sirve para materias primas y productos:
// solo cambia la tabla.
type StockRepo struct {
	q     Querier
	table string
}

// NewStockMateriaPrimaRepository stock de materias primas (gramos).
func NewStockMateriaPrimaRepository(q Querier) *StockRepo {
	return &StockRepo{q: q, table: "materias_primas"}
}

// NewStockProductoRepository stock de productos terminados (unidades).
func NewStockProductoRepository(q Querier) *StockRepo {
	return &StockRepo{q: q, table: "productos"}
}

// Get lee el stock vigente sin bloquear. Devuelve nil si el ítem no existe
// o está borrado lógicamente.
func (r *StockRepo) Get(id int64) (*entity.ItemStock, error) {
	query := fmt.Sprintf(`
		SELECT id, nombre, stock_actual
		FROM %s WHERE id = $1 AND deleted_at IS NULL`, r.table)
	var s entity.ItemStock
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Nombre, &s.StockActual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock %s: %w", r.table, err)
	}
	return &s, nil
}

// GetForUpdate lee el stock y bloquea la fila (SELECT FOR UPDATE) dentro de
// la tx actual. Serializa a los escritores concurrentes del mismo ítem.
func (r *StockRepo) GetForUpdate(id int64) (*entity.ItemStock, error) {
	query := fmt.Sprintf(`
		SELECT id, nombre, stock_actual
		FROM %s WHERE id = $1 AND deleted_at IS NULL
		FOR UPDATE`, r.table)
	var s entity.ItemStock
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Nombre, &s.StockActual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update %s: %w", r.table, err)
	}
	return &s, nil
}

// UpdateStock escribe el nuevo stock_actual. Debe ejecutarse en la misma tx
// que el movimiento correspondiente.
func (r *StockRepo) UpdateStock(id int64, nuevo decimal.Decimal) error {
	query := fmt.Sprintf(
		`UPDATE %s SET stock_actual = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, r.table)
	_, err := r.q.Exec(context.Background(), query, id, nuevo)
	if err != nil {
		return fmt.Errorf("update stock %s: %w", r.table, err)
	}
	return nil
}
