package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación del ledger append-only sobre PostgreSQL.
// Solo inserta y consulta: los movimientos nunca se actualizan ni se borran.
// Una instancia por variante; cambia la tabla y la columna del ítem.
type MovimientoRepo struct {
	q     Querier
	table string
	fkCol string
}

// NewMovimientoMateriaPrimaRepository movimientos de materia prima.
func NewMovimientoMateriaPrimaRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q, table: "movimientos_materia_prima", fkCol: "materia_prima_id"}
}

// NewMovimientoProductoRepository movimientos de producto terminado.
func NewMovimientoProductoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q, table: "movimientos_producto", fkCol: "producto_id"}
}

// Create inserta un movimiento y completa el ID generado.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (grupo, %s, tipo_movimiento, cantidad, fecha, pedido_id, orden_compra_id, observacion, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
		RETURNING id, created_at`, r.table, r.fkCol)
	err := r.q.QueryRow(context.Background(), query,
		m.Grupo, m.ItemID, m.TipoMovimiento, m.Cantidad, m.Fecha,
		m.PedidoID, m.OrdenCompraID, m.Observacion, m.UsuarioID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert movimiento %s: %w", r.table, err)
	}
	return nil
}

// SumPorOrdenCompra suma las cantidades de un tipo de movimiento de un ítem
// ligadas a una orden de compra. Sin filas devuelve cero.
func (r *MovimientoRepo) SumPorOrdenCompra(itemID, ordenCompraID int64, tipo string) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(cantidad), 0)
		FROM %s WHERE %s = $1 AND orden_compra_id = $2 AND tipo_movimiento = $3`, r.table, r.fkCol)
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, itemID, ordenCompraID, tipo).Scan(&sum)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("sum movimientos %s: %w", r.table, err)
	}
	return sum, nil
}

// ListByItem lista los movimientos de un ítem, más recientes primero, con
// rango de fechas opcional.
func (r *MovimientoRepo) ListByItem(itemID int64, desde, hasta *time.Time, limit, offset int) ([]*entity.Movimiento, error) {
	query := fmt.Sprintf(`
		SELECT id, grupo, %s, tipo_movimiento, cantidad, fecha, pedido_id, orden_compra_id, observacion, usuario_id, created_at
		FROM %s WHERE %s = $1
		  AND ($2::timestamptz IS NULL OR fecha >= $2)
		  AND ($3::timestamptz IS NULL OR fecha <= $3)
		ORDER BY fecha DESC, id DESC LIMIT $4 OFFSET $5`, r.fkCol, r.table, r.fkCol)
	rows, err := r.q.Query(context.Background(), query, itemID, desde, hasta, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movimientos %s: %w", r.table, err)
	}
	defer rows.Close()

	var out []*entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		if err := rows.Scan(
			&m.ID, &m.Grupo, &m.ItemID, &m.TipoMovimiento, &m.Cantidad, &m.Fecha,
			&m.PedidoID, &m.OrdenCompraID, &m.Observacion, &m.UsuarioID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento %s: %w", r.table, err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
