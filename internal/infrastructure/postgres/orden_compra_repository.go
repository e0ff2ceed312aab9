package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mnavarrov/erp-planta-api/internal/domain/entity"
	"github.com/mnavarrov/erp-planta-api/internal/domain/repository"
)

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

// OrdenCompraRepo implementación de OrdenCompraRepository sobre PostgreSQL.
type OrdenCompraRepo struct {
	q Querier
}

// NewOrdenCompraRepository construye el adaptador de órdenes de compra.
func NewOrdenCompraRepository(q Querier) *OrdenCompraRepo {
	return &OrdenCompraRepo{q: q}
}

// Create inserta la orden de compra y completa el ID generado.
func (r *OrdenCompraRepo) Create(o *entity.OrdenCompra) error {
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO ordenes_compra (cotizacion_id, estado_id, fecha, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		o.CotizacionID, o.EstadoID, o.Fecha, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("insert orden compra: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de compra. Devuelve nil si no existe o está borrada.
func (r *OrdenCompraRepo) GetByID(id int64) (*entity.OrdenCompra, error) {
	var o entity.OrdenCompra
	err := r.q.QueryRow(context.Background(), `
		SELECT id, cotizacion_id, estado_id, fecha, created_at, updated_at
		FROM ordenes_compra WHERE id = $1 AND deleted_at IS NULL`, id).Scan(
		&o.ID, &o.CotizacionID, &o.EstadoID, &o.Fecha, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden compra: %w", err)
	}
	return &o, nil
}

// List lista órdenes de compra, más recientes primero.
func (r *OrdenCompraRepo) List(limit, offset int) ([]*entity.OrdenCompra, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, cotizacion_id, estado_id, fecha, created_at, updated_at
		FROM ordenes_compra WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes compra: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrdenCompra
	for rows.Next() {
		var o entity.OrdenCompra
		if err := rows.Scan(&o.ID, &o.CotizacionID, &o.EstadoID, &o.Fecha, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden compra: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// UpdateEstado cambia solo el estado de la orden.
func (r *OrdenCompraRepo) UpdateEstado(id int64, estadoID int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes_compra SET estado_id = $2, updated_at = now() WHERE id = $1 AND deleted_at IS NULL`,
		id, estadoID,
	)
	if err != nil {
		return fmt.Errorf("update estado orden compra: %w", err)
	}
	return nil
}

// Delete borra lógicamente la orden.
func (r *OrdenCompraRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes_compra SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete orden compra: %w", err)
	}
	return nil
}
